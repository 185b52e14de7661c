package store

import (
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/bencode/codec"
)

// Iterator is an interface that extends ValueIterator with a Key method.
type Iterator[K, V any] interface {
	ValueIterator[V]
	Key() K
}

// ValueIterator is an interface that extends BadgerIterator with a Value method.
type ValueIterator[V any] interface {
	BadgerIterator
	Value() (value V, err error)
}

// BadgerIterator is the interface that represents a badger iterator.
type BadgerIterator interface {
	Close()
	Item() *badger.Item
	Next()
	Rewind()
	Seek(key []byte)
	Valid() bool
}

var _ Iterator[[]byte, int] = (*DecodingIterator[int])(nil)

// DecodingIterator is an iterator that decodes the value of the current item.
type DecodingIterator[T any] struct {
	base   *badger.Iterator
	codec  codec.Codec[T]
	prefix []byte
	cached *T
}

func newDecodingIterator[T any](base *badger.Iterator, c codec.Codec[T], prefix []byte) *DecodingIterator[T] {
	return &DecodingIterator[T]{base: base, codec: c, prefix: prefix}
}

// Close closes the iterator.
func (it *DecodingIterator[T]) Close() {
	it.base.Close()
}

// Item returns the current item.
func (it *DecodingIterator[T]) Item() *badger.Item {
	return it.base.Item()
}

// Next moves to the next item.
func (it *DecodingIterator[T]) Next() {
	it.base.Next()
	it.cached = nil
}

// Rewind rewinds the iterator.
func (it *DecodingIterator[T]) Rewind() {
	it.base.Rewind()
	it.cached = nil
}

// Seek seeks the key relative to the store.
func (it *DecodingIterator[T]) Seek(key []byte) {
	it.base.Seek(concat(it.prefix, key))
	it.cached = nil
}

// Valid returns if the iterator is valid.
func (it *DecodingIterator[T]) Valid() bool {
	return it.base.Valid()
}

// Key returns a copy of the current key with the store prefix trimmed.
func (it *DecodingIterator[T]) Key() []byte {
	return it.base.Item().KeyCopy(nil)[len(it.prefix):]
}

// Value returns the current value decoded as T.
func (it *DecodingIterator[T]) Value() (value T, err error) {
	if it.cached != nil {
		return *it.cached, nil
	}

	item := it.base.Item()
	if item == nil {
		return value, nil
	}
	err = item.Value(func(val []byte) error {
		value, err = it.codec.Decode(val)
		return err
	})
	if err != nil {
		return value, fmt.Errorf("failed to decode value of %q: %w", item.Key(), err)
	}
	it.cached = &value
	return value, nil
}

func concat(a, b []byte) []byte {
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
