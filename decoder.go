package bencode

import (
	"slices"
	"strconv"

	"github.com/ehsanranjbar/bencode/internal/ordmap"
)

var defaultDecoder = NewDecoder()

// Decode parses one value from the start of bz with the default strict
// policy and returns it along with the number of bytes consumed.
// Bytes after the value are left unread.
func Decode(bz []byte) (Value, int, error) {
	return defaultDecoder.Decode(bz)
}

// Decoder parses bencoded input. A Decoder is immutable after construction
// and safe for concurrent use.
type Decoder struct {
	lenientKeys bool
	maxDepth    int
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// NewDecoder creates a new Decoder. By default dictionary keys must be
// strictly ascending and nesting is unlimited.
func NewDecoder(opts ...DecoderOption) *Decoder {
	dec := &Decoder{}
	for _, opt := range opts {
		opt(dec)
	}
	return dec
}

// WithLenientKeys makes the decoder accept dictionary keys in any order.
// Keys are sorted in the decoded value; duplicates are still rejected.
func WithLenientKeys() DecoderOption {
	return func(dec *Decoder) {
		dec.lenientKeys = true
	}
}

// WithMaxDepth limits how deeply lists and dictionaries may nest.
// Zero means no limit.
func WithMaxDepth(n int) DecoderOption {
	return func(dec *Decoder) {
		dec.maxDepth = n
	}
}

// Decode parses one value from the start of bz and returns it along with the
// number of bytes consumed. On failure the error is a *DecodeError.
func (dec *Decoder) Decode(bz []byte) (Value, int, error) {
	p := parser{dec: dec, buf: bz}
	v, err := p.value()
	if err != nil {
		return Value{}, 0, err
	}
	return v, p.pos, nil
}

type parser struct {
	dec   *Decoder
	buf   []byte
	pos   int
	depth int
}

func (p *parser) eof() error {
	return newDecodeError(ErrUnexpectedEndOfInput, len(p.buf))
}

func (p *parser) value() (Value, error) {
	if p.pos >= len(p.buf) {
		return Value{}, p.eof()
	}

	switch c := p.buf[p.pos]; {
	case c == 'i':
		return p.integer()
	case isDigit(c):
		s, err := p.byteString()
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	case c == 'l':
		return p.list()
	case c == 'd':
		return p.dict()
	}
	return Value{}, newDecodeError(ErrInvalidLeadByte, p.pos)
}

func (p *parser) integer() (Value, error) {
	p.pos++
	start := p.pos
	if p.pos < len(p.buf) && p.buf[p.pos] == '-' {
		p.pos++
	}
	digits := p.pos
	for p.pos < len(p.buf) && isDigit(p.buf[p.pos]) {
		p.pos++
	}

	switch {
	case p.pos >= len(p.buf):
		return Value{}, p.eof()
	case p.buf[p.pos] != 'e', p.pos == digits:
		return Value{}, newDecodeError(ErrInvalidIntegerFormat, p.pos)
	case p.buf[digits] == '0' && (p.pos-digits > 1 || digits > start):
		// Leading zeros and negative zero.
		return Value{}, newDecodeError(ErrInvalidIntegerFormat, start)
	}

	n, err := strconv.ParseInt(string(p.buf[start:p.pos]), 10, 64)
	if err != nil {
		return Value{}, newDecodeError(ErrIntegerOverflow, start)
	}
	p.pos++
	return Int64(n), nil
}

// byteString expects the cursor on a digit.
func (p *parser) byteString() (string, error) {
	start := p.pos
	n := 0
	for p.pos < len(p.buf) && isDigit(p.buf[p.pos]) {
		// Saturate past the buffer length; such a prefix can never be satisfied.
		if n <= len(p.buf) {
			n = n*10 + int(p.buf[p.pos]-'0')
		}
		p.pos++
	}

	switch {
	case p.pos >= len(p.buf):
		return "", p.eof()
	case p.buf[p.pos] != ':':
		return "", newDecodeError(ErrInvalidLengthPrefix, p.pos)
	case p.buf[start] == '0' && p.pos-start > 1:
		return "", newDecodeError(ErrInvalidLengthPrefix, start)
	}
	p.pos++

	if n > len(p.buf)-p.pos {
		return "", p.eof()
	}
	s := string(p.buf[p.pos : p.pos+n])
	p.pos += n
	return s, nil
}

func (p *parser) enter() error {
	p.depth++
	if p.dec.maxDepth > 0 && p.depth > p.dec.maxDepth {
		return newDecodeError(ErrNestingTooDeep, p.pos)
	}
	p.pos++
	return nil
}

func (p *parser) list() (Value, error) {
	if err := p.enter(); err != nil {
		return Value{}, err
	}
	defer func() { p.depth-- }()

	var items []Value
	for {
		if p.pos >= len(p.buf) {
			return Value{}, p.eof()
		}
		if p.buf[p.pos] == 'e' {
			p.pos++
			return newList(items), nil
		}

		v, err := p.value()
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
	}
}

func (p *parser) dict() (Value, error) {
	if err := p.enter(); err != nil {
		return Value{}, err
	}
	defer func() { p.depth-- }()

	var (
		entries []Entry
		seen    *ordmap.Map[string, struct{}]
	)
	if p.dec.lenientKeys {
		seen = ordmap.New[string, struct{}](0)
	}

	for {
		if p.pos >= len(p.buf) {
			return Value{}, p.eof()
		}
		c := p.buf[p.pos]
		if c == 'e' {
			p.pos++
			break
		}
		if !isDigit(c) {
			return Value{}, newDecodeError(ErrInvalidDictionaryKeyType, p.pos)
		}

		keyAt := p.pos
		key, err := p.byteString()
		if err != nil {
			return Value{}, err
		}
		if seen != nil {
			if seen.Has(key) {
				return Value{}, newDecodeError(ErrUnsortedOrDuplicateKeys, keyAt)
			}
			_ = seen.Add(key, struct{}{})
		} else if len(entries) > 0 && key <= entries[len(entries)-1].Key {
			return Value{}, newDecodeError(ErrUnsortedOrDuplicateKeys, keyAt)
		}

		v, err := p.value()
		if err != nil {
			return Value{}, err
		}
		entries = append(entries, Entry{Key: key, Value: v})
	}

	if seen != nil {
		slices.SortFunc(entries, compareEntries)
	}
	return newDict(entries), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
