package prefix

import (
	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/bencode/store"
)

var (
	_ store.Backend  = (*Store)(nil)
	_ store.Prefixed = (*Store)(nil)
)

// Store is a backend that prefixes all keys with a given prefix.
type Store struct {
	base       store.Backend
	basePrefix []byte
	prefix     []byte
}

// New creates a new Store. Prefixed bases nest, so the full prefix of the
// result is the base prefix followed by prefix.
func New(base store.Backend, prefix []byte) *Store {
	var basePrefix []byte
	if pfx, ok := base.(store.Prefixed); ok {
		basePrefix = pfx.Prefix()
	}

	return &Store{
		base:       base,
		basePrefix: basePrefix,
		prefix:     append([]byte(nil), prefix...),
	}
}

// Prefix returns the full prefix of the store.
func (s *Store) Prefix() []byte {
	return s.join(s.basePrefix, s.prefix)
}

// Delete deletes the key from the store.
func (s *Store) Delete(key []byte) error {
	return s.base.Delete(s.join(s.prefix, key))
}

// Get gets the key from the store.
func (s *Store) Get(key []byte) (*badger.Item, error) {
	return s.base.Get(s.join(s.prefix, key))
}

// NewIterator creates an iterator restricted to the store's keys.
func (s *Store) NewIterator(opts badger.IteratorOptions) *badger.Iterator {
	opts.Prefix = s.join(s.prefix, opts.Prefix)
	return s.base.NewIterator(opts)
}

// Set sets the key in the store.
func (s *Store) Set(key, value []byte) error {
	return s.base.Set(s.join(s.prefix, key), value)
}

// SetEntry sets the entry in the store.
func (s *Store) SetEntry(e *badger.Entry) error {
	e.Key = s.join(s.prefix, e.Key)
	return s.base.SetEntry(e)
}

func (s *Store) join(a, b []byte) []byte {
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
