package store

import (
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/bencode"
	"github.com/ehsanranjbar/bencode/codec"
	"github.com/google/uuid"
)

// Backend is the generalized interface that represents a key-value store with get, set, delete and iterate operations.
// *badger.Txn satisfies it.
type Backend interface {
	Delete(key []byte) error
	Get(key []byte) (item *badger.Item, err error)
	NewIterator(opts badger.IteratorOptions) *badger.Iterator
	Set(key, value []byte) error
	SetEntry(e *badger.Entry) error
}

// Prefixed is implemented by backends that namespace their keys.
type Prefixed interface {
	Prefix() []byte
}

var _ Backend = (*badger.Txn)(nil)

// Store is a store that encodes values with a codec before writing them to the backend.
type Store[T any] struct {
	base  Backend
	codec codec.Codec[T]
}

// New creates a new store.
func New[T any](base Backend, c codec.Codec[T]) *Store[T] {
	return &Store[T]{base: base, codec: c}
}

// NewValueStore creates a store that keeps bencode values in canonical form.
// The decoder options govern how stored bytes are read back.
func NewValueStore(base Backend, opts ...bencode.DecoderOption) *Store[bencode.Value] {
	return New[bencode.Value](base, bencode.NewCodec(opts...))
}

// Delete deletes the key from the store.
func (s *Store[T]) Delete(key []byte) error {
	return s.base.Delete(key)
}

// Get gets the value of the key from the store and decodes it.
func (s *Store[T]) Get(key []byte) (value T, err error) {
	_, value, err = s.GetWithItem(key)
	return value, err
}

// GetWithItem is similar to Get, but it also returns the badger.Item as well.
func (s *Store[T]) GetWithItem(key []byte) (item *badger.Item, value T, err error) {
	item, err = s.base.Get(key)
	if err != nil {
		return nil, value, fmt.Errorf("failed to get %q: %w", key, err)
	}

	err = item.Value(func(val []byte) error {
		value, err = s.codec.Decode(val)
		return err
	})
	if err != nil {
		return item, value, fmt.Errorf("failed to decode value of %q: %w", key, err)
	}
	return item, value, nil
}

// Set encodes the value and sets it to the key.
func (s *Store[T]) Set(key []byte, value T) error {
	return s.setEntry(key, value, nil)
}

// SetWithTTL is like Set but the entry expires after ttl.
func (s *Store[T]) SetWithTTL(key []byte, value T, ttl time.Duration) error {
	return s.setEntry(key, value, func(e *badger.Entry) *badger.Entry {
		return e.WithTTL(ttl)
	})
}

func (s *Store[T]) setEntry(key []byte, value T, decorate func(*badger.Entry) *badger.Entry) error {
	data, err := s.codec.Encode(value)
	if err != nil {
		return fmt.Errorf("failed to encode value of %q: %w", key, err)
	}

	entry := badger.NewEntry(key, data)
	if decorate != nil {
		entry = decorate(entry)
	}
	return s.base.SetEntry(entry)
}

// Put stores the value under a new random UUID key and returns the key.
func (s *Store[T]) Put(value T) (uuid.UUID, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("failed to generate key: %w", err)
	}

	if err := s.Set(id[:], value); err != nil {
		return uuid.UUID{}, err
	}
	return id, nil
}

// NewIterator creates a new iterator that decodes values lazily.
func (s *Store[T]) NewIterator(opts badger.IteratorOptions) *DecodingIterator[T] {
	var prefix []byte
	if p, ok := s.base.(Prefixed); ok {
		prefix = p.Prefix()
	}
	return newDecodingIterator(s.base.NewIterator(opts), s.codec, prefix)
}
