package prefix_test

import (
	"testing"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/bencode"
	"github.com/ehsanranjbar/bencode/store"
	"github.com/ehsanranjbar/bencode/store/prefix"
	"github.com/ehsanranjbar/bencode/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrefixStore(t *testing.T) {
	txn := testutil.PrepareTxn(t, true)
	s := prefix.New(txn, []byte("prefix"))

	var (
		key   = []byte("foo")
		value = bencode.Encode(bencode.String("bar"))
	)

	t.Run("Set", func(t *testing.T) {
		require.NoError(t, s.Set(key, value))
	})

	t.Run("SetEntry", func(t *testing.T) {
		require.NoError(t, s.SetEntry(badger.NewEntry(key, value)))
	})

	t.Run("Get", func(t *testing.T) {
		item, err := s.Get(key)
		require.NoError(t, err)
		require.NotNil(t, item)

		item, err = txn.Get([]byte("prefixfoo"))
		require.NoError(t, err)
		require.NotNil(t, item)
	})

	t.Run("NewIterator", func(t *testing.T) {
		iter := s.NewIterator(badger.IteratorOptions{Prefix: []byte("foo")})
		defer iter.Close()

		n := 0
		for iter.Rewind(); iter.Valid(); iter.Next() {
			require.Equal(t, []byte("prefixfoo"), iter.Item().KeyCopy(nil))
			require.NoError(t, iter.Item().Value(func(val []byte) error {
				require.Equal(t, value, val)
				return nil
			}))
			n++
		}
		require.Equal(t, 1, n)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Delete(key))
	})

	t.Run("Get after Delete", func(t *testing.T) {
		item, err := s.Get(key)
		require.ErrorIs(t, err, badger.ErrKeyNotFound)
		require.Nil(t, item)
	})
}

func TestNestedPrefix(t *testing.T) {
	txn := testutil.PrepareTxn(t, true)
	outer := prefix.New(txn, []byte("a/"))
	inner := prefix.New(outer, []byte("b/"))

	require.Equal(t, []byte("a/b/"), inner.Prefix())

	vs := store.NewValueStore(inner)
	require.NoError(t, vs.Set([]byte("k"), bencode.Int64(7)))

	item, err := txn.Get([]byte("a/b/k"))
	require.NoError(t, err)
	raw, err := item.ValueCopy(nil)
	require.NoError(t, err)
	require.Equal(t, "i7e", string(raw))

	iter := vs.NewIterator(badger.DefaultIteratorOptions)
	defer iter.Close()
	iter.Rewind()
	require.True(t, iter.Valid())
	require.Equal(t, []byte("k"), iter.Key())
}
