package store

import (
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/bencode"
	"github.com/ehsanranjbar/bencode/codec"
)

// Migrate rewrites every entry of src through convert and stores the result
// under the same key using the dst codec.
func Migrate[T, U any](
	src *Store[T],
	dst codec.Codec[U],
	convert func(T, *badger.Item) (U, error),
) (*Store[U], error) {
	out := New(src.base, dst)

	iter := src.NewIterator(badger.DefaultIteratorOptions)
	defer iter.Close()
	for iter.Rewind(); iter.Valid(); iter.Next() {
		item := iter.Item()
		v, err := iter.Value()
		if err != nil {
			return nil, fmt.Errorf("failed to get value: %w", err)
		}

		u, err := convert(v, item)
		if err != nil {
			return nil, fmt.Errorf("failed to convert: %w", err)
		}

		err = out.Set(iter.Key(), u)
		if err != nil {
			return nil, fmt.Errorf("failed to set: %w", err)
		}
	}

	return out, nil
}

// Canonicalize reads every entry of base with lenient dictionary key order and
// writes it back in canonical form. It returns a strict store over base.
func Canonicalize(base Backend) (*Store[bencode.Value], error) {
	lenient := NewValueStore(base, bencode.WithLenientKeys())
	return Migrate(lenient, bencode.NewCodec(), func(v bencode.Value, _ *badger.Item) (bencode.Value, error) {
		return v, nil
	})
}
