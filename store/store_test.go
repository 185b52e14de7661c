package store_test

import (
	"testing"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/bencode"
	"github.com/ehsanranjbar/bencode/codec"
	"github.com/ehsanranjbar/bencode/store"
	pstore "github.com/ehsanranjbar/bencode/store/prefix"
	"github.com/ehsanranjbar/bencode/testutil"
	"github.com/stretchr/testify/require"
)

func TestValueStore(t *testing.T) {
	txn := testutil.PrepareTxn(t, true)
	s := store.NewValueStore(txn)

	var (
		key   = []byte("foo")
		value = testutil.SampleValue()
	)

	t.Run("NotFound", func(t *testing.T) {
		_, err := s.Get(key)
		require.ErrorIs(t, err, badger.ErrKeyNotFound)
	})

	t.Run("Set", func(t *testing.T) {
		require.NoError(t, s.Set(key, value))
	})

	t.Run("Get", func(t *testing.T) {
		actual, err := s.Get(key)
		require.NoError(t, err)
		require.Equal(t, value, actual)
	})

	t.Run("StoredCanonically", func(t *testing.T) {
		item, err := txn.Get(key)
		require.NoError(t, err)
		raw, err := item.ValueCopy(nil)
		require.NoError(t, err)
		require.Equal(t, testutil.SampleEncoding, string(raw))
	})

	t.Run("SetInvalid", func(t *testing.T) {
		err := s.Set([]byte("bad"), bencode.Value{})
		require.ErrorIs(t, err, bencode.ErrInvalidValue)

		nested := bencode.MustDict(bencode.Entry{Key: "x", Value: bencode.List(bencode.Value{})})
		require.NotPanics(t, func() {
			err = s.Set([]byte("bad"), nested)
		})
		require.ErrorIs(t, err, bencode.ErrInvalidValue)

		_, err = s.Get([]byte("bad"))
		require.ErrorIs(t, err, badger.ErrKeyNotFound)
	})

	t.Run("SetWithTTL", func(t *testing.T) {
		require.NoError(t, s.SetWithTTL([]byte("tmp"), bencode.Int64(1), time.Minute))

		item, v, err := s.GetWithItem([]byte("tmp"))
		require.NoError(t, err)
		require.NotZero(t, item.ExpiresAt())
		require.Equal(t, bencode.Int64(1), v)
	})

	t.Run("Put", func(t *testing.T) {
		id, err := s.Put(bencode.String("spam"))
		require.NoError(t, err)

		v, err := s.Get(id[:])
		require.NoError(t, err)
		require.Equal(t, bencode.String("spam"), v)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Delete(key))
		_, err := s.Get(key)
		require.ErrorIs(t, err, badger.ErrKeyNotFound)
	})
}

func TestValueStoreCorrupt(t *testing.T) {
	txn := testutil.PrepareTxn(t, true)
	s := store.NewValueStore(txn)

	require.NoError(t, txn.Set([]byte("unsorted"), []byte("d1:b0:1:a0:e")))
	require.NoError(t, txn.Set([]byte("trailing"), []byte("i1ei2e")))

	_, err := s.Get([]byte("unsorted"))
	var de *bencode.DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, bencode.ErrUnsortedOrDuplicateKeys, de.Kind)

	_, err = s.Get([]byte("trailing"))
	require.ErrorIs(t, err, bencode.ErrTrailingData)

	lenient := store.NewValueStore(txn, bencode.WithLenientKeys())
	v, err := lenient.Get([]byte("unsorted"))
	require.NoError(t, err)
	require.Equal(t, "d1:a0:1:b0:e", string(bencode.Encode(v)))
}

func TestIterator(t *testing.T) {
	txn := testutil.PrepareTxn(t, true)
	s := store.NewValueStore(pstore.New(txn, []byte("values/")))

	var (
		keys   = [][]byte{[]byte("a"), []byte("b"), []byte("c")}
		values = []bencode.Value{bencode.Int64(1), bencode.String("two"), bencode.List(bencode.Int64(3))}
	)
	for i, key := range keys {
		require.NoError(t, s.Set(key, values[i]))
	}
	require.NoError(t, txn.Set([]byte("other"), []byte("i0e")))

	t.Run("Iterate", func(t *testing.T) {
		iter := s.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		var (
			actualKeys   [][]byte
			actualValues []bencode.Value
		)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			require.NotNil(t, iter.Item())

			v, err := iter.Value()
			require.NoError(t, err)
			cached, err := iter.Value()
			require.NoError(t, err)
			require.Equal(t, v, cached)

			actualKeys = append(actualKeys, iter.Key())
			actualValues = append(actualValues, v)
		}
		require.Equal(t, keys, actualKeys)
		require.Equal(t, values, actualValues)
	})

	t.Run("Seek", func(t *testing.T) {
		iter := s.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		iter.Seek([]byte("b"))
		require.True(t, iter.Valid())
		require.Equal(t, []byte("b"), iter.Key())

		v, err := iter.Value()
		require.NoError(t, err)
		require.Equal(t, bencode.String("two"), v)
	})
}

func TestMigrate(t *testing.T) {
	txn := testutil.PrepareTxn(t, true)
	src := store.NewValueStore(txn)

	var keys = [][]byte{[]byte("1"), []byte("2")}
	for i, key := range keys {
		require.NoError(t, src.Set(key, bencode.Int(i+1)))
	}

	dst, err := store.Migrate(src, codec.StringCodec{}, func(v bencode.Value, _ *badger.Item) (string, error) {
		return v.String(), nil
	})
	require.NoError(t, err)

	for i, key := range keys {
		v, err := dst.Get(key)
		require.NoError(t, err)
		require.Equal(t, bencode.Int(i+1).String(), v)
	}
}

func TestCanonicalize(t *testing.T) {
	txn := testutil.PrepareTxn(t, true)
	base := pstore.New(txn, []byte("raw/"))

	require.NoError(t, base.Set([]byte("x"), []byte("d4:spam4:eggs3:cow3:mooe")))
	require.NoError(t, base.Set([]byte("y"), []byte("li1ee")))

	s, err := store.Canonicalize(base)
	require.NoError(t, err)

	item, err := base.Get([]byte("x"))
	require.NoError(t, err)
	raw, err := item.ValueCopy(nil)
	require.NoError(t, err)
	require.Equal(t, "d3:cow3:moo4:spam4:eggse", string(raw))

	v, err := s.Get([]byte("y"))
	require.NoError(t, err)
	require.Equal(t, bencode.List(bencode.Int64(1)), v)
}
