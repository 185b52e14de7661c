package bencode

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/ehsanranjbar/bencode/internal/ordmap"
	"golang.org/x/exp/constraints"
)

var (
	// ErrDuplicateKey is returned when a dictionary is built with the same key twice.
	ErrDuplicateKey = errors.New("duplicate dictionary key")
	// ErrInvalidValue is returned when the zero Value is used where a valid Value is required.
	ErrInvalidValue = errors.New("invalid bencode value")
)

// Kind is the variant of a Value.
type Kind uint8

const (
	// InvalidKind is the kind of the zero Value.
	InvalidKind Kind = iota
	IntegerKind
	ByteStringKind
	ListKind
	DictionaryKind
)

// String implements the fmt.Stringer interface.
func (k Kind) String() string {
	switch k {
	case IntegerKind:
		return "integer"
	case ByteStringKind:
		return "byte string"
	case ListKind:
		return "list"
	case DictionaryKind:
		return "dictionary"
	}
	return "invalid"
}

// Value is a bencode value: exactly one of an integer, a byte string,
// a list or a dictionary. Values are immutable once constructed.
type Value struct {
	kind    Kind
	num     int64
	str     string
	items   []Value
	entries []Entry
}

// Entry is a dictionary key-value pair. Key holds raw bytes.
type Entry struct {
	Key   string
	Value Value
}

// Int64 creates an integer value.
func Int64(n int64) Value {
	return Value{kind: IntegerKind, num: n}
}

// Int creates an integer value from any signed integer type.
func Int[T constraints.Signed](n T) Value {
	return Int64(int64(n))
}

// Bytes creates a byte string value. The bytes are copied.
func Bytes(b []byte) Value {
	return Value{kind: ByteStringKind, str: string(b)}
}

// String creates a byte string value.
func String(s string) Value {
	return Value{kind: ByteStringKind, str: s}
}

// List creates a list value holding items in the given order.
func List(items ...Value) Value {
	return newList(slices.Clone(items))
}

func newList(items []Value) Value {
	if len(items) == 0 {
		items = nil
	}
	return Value{kind: ListKind, items: items}
}

// Dict creates a dictionary value. Entries may be given in any order; it
// returns ErrDuplicateKey if a key appears more than once.
func Dict(entries ...Entry) (Value, error) {
	m := ordmap.New[string, Value](len(entries))
	for _, e := range entries {
		if err := m.Add(e.Key, e.Value); err != nil {
			return Value{}, fmt.Errorf("%w %q", ErrDuplicateKey, e.Key)
		}
	}

	return fromSortedPairs(m.Sorted()), nil
}

// MustDict is like Dict but panics if there is an error.
func MustDict(entries ...Entry) Value {
	v, err := Dict(entries...)
	if err != nil {
		panic(err)
	}
	return v
}

// DictOf creates a dictionary value from a map.
func DictOf(m map[string]Value) Value {
	entries := make([]Entry, 0, len(m))
	for k, v := range m {
		entries = append(entries, Entry{Key: k, Value: v})
	}
	slices.SortFunc(entries, compareEntries)
	return newDict(entries)
}

func fromSortedPairs(ps []ordmap.Pair[string, Value]) Value {
	entries := make([]Entry, len(ps))
	for i, p := range ps {
		entries[i] = Entry{Key: p.Key, Value: p.Value}
	}
	return newDict(entries)
}

// newDict takes ownership of entries, which must be sorted and unique.
func newDict(entries []Entry) Value {
	if len(entries) == 0 {
		entries = nil
	}
	return Value{kind: DictionaryKind, entries: entries}
}

func compareEntries(a, b Entry) int {
	return strings.Compare(a.Key, b.Key)
}

// Kind returns the variant of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsValid reports whether v is one of the four variants rather than the zero Value.
func (v Value) IsValid() bool {
	return v.kind != InvalidKind
}

// encodable reports whether v and every value nested in it are valid.
func (v Value) encodable() bool {
	switch v.kind {
	case InvalidKind:
		return false
	case ListKind:
		for _, item := range v.items {
			if !item.encodable() {
				return false
			}
		}
	case DictionaryKind:
		for _, e := range v.entries {
			if !e.Value.encodable() {
				return false
			}
		}
	}
	return true
}

// AsInt returns the integer payload.
func (v Value) AsInt() (int64, bool) {
	return v.num, v.kind == IntegerKind
}

// AsBytes returns a copy of the byte string payload.
func (v Value) AsBytes() ([]byte, bool) {
	if v.kind != ByteStringKind {
		return nil, false
	}
	return []byte(v.str), true
}

// AsString returns the byte string payload as a string.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == ByteStringKind
}

// AsList returns a copy of the list items.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != ListKind {
		return nil, false
	}
	return slices.Clone(v.items), true
}

// AsDict returns a copy of the dictionary entries in key order.
func (v Value) AsDict() ([]Entry, bool) {
	if v.kind != DictionaryKind {
		return nil, false
	}
	return slices.Clone(v.entries), true
}

// Get looks up a dictionary key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != DictionaryKind {
		return Value{}, false
	}
	i := sort.Search(len(v.entries), func(i int) bool {
		return v.entries[i].Key >= key
	})
	if i < len(v.entries) && v.entries[i].Key == key {
		return v.entries[i].Value, true
	}
	return Value{}, false
}

// Len returns the number of bytes, items or entries. It is 0 for integers.
func (v Value) Len() int {
	switch v.kind {
	case ByteStringKind:
		return len(v.str)
	case ListKind:
		return len(v.items)
	case DictionaryKind:
		return len(v.entries)
	}
	return 0
}

// Equal reports whether v and o hold the same logical value.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case IntegerKind:
		return v.num == o.num
	case ByteStringKind:
		return v.str == o.str
	case ListKind:
		return slices.EqualFunc(v.items, o.items, Value.Equal)
	case DictionaryKind:
		return slices.EqualFunc(v.entries, o.entries, func(a, b Entry) bool {
			return a.Key == b.Key && a.Value.Equal(b.Value)
		})
	}
	return true
}

// String implements the fmt.Stringer interface with a readable rendering.
func (v Value) String() string {
	var sb strings.Builder
	v.format(&sb)
	return sb.String()
}

func (v Value) format(sb *strings.Builder) {
	switch v.kind {
	case IntegerKind:
		sb.WriteString(strconv.FormatInt(v.num, 10))
	case ByteStringKind:
		sb.WriteString(strconv.Quote(v.str))
	case ListKind:
		sb.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.format(sb)
		}
		sb.WriteByte(']')
	case DictionaryKind:
		sb.WriteByte('{')
		for i, e := range v.entries {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Quote(e.Key))
			sb.WriteString(": ")
			e.Value.format(sb)
		}
		sb.WriteByte('}')
	default:
		sb.WriteString("<invalid>")
	}
}
