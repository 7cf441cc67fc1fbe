package badgerstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tupleflow/pkg/iterator"
	"tupleflow/pkg/tuple"
	"tupleflow/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "store"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func orderDesc(t *testing.T) *tuple.TupleDescription {
	t.Helper()
	desc, err := tuple.NewTupleDesc(
		[]types.Type{types.IntType, types.StringType},
		[]string{"id", "item"},
	)
	require.NoError(t, err)
	return desc
}

func orderTuple(t *testing.T, desc *tuple.TupleDescription, id int64, item string) *tuple.Tuple {
	t.Helper()
	tup := tuple.NewTuple(desc)
	require.NoError(t, tup.SetField(0, types.NewIntField(id)))
	require.NoError(t, tup.SetField(1, types.NewStringField(item, types.StringMaxSize)))
	return tup
}

func TestStoreAppendAndScan(t *testing.T) {
	store := openTestStore(t)
	desc := orderDesc(t)

	require.NoError(t, store.Append("orders",
		orderTuple(t, desc, 1, "keyboard"),
		orderTuple(t, desc, 2, "mouse"),
		orderTuple(t, desc, 3, "monitor"),
	))

	scan := store.Scan("orders", desc)
	require.NoError(t, scan.Open())
	defer scan.Close()

	tuples, err := iterator.Collect(scan)
	require.NoError(t, err)
	require.Len(t, tuples, 3)
	assert.Equal(t, "1\tkeyboard", tuples[0].String())
	assert.Equal(t, "2\tmouse", tuples[1].String())
	assert.Equal(t, "3\tmonitor", tuples[2].String())
}

func TestStoreInsertionOrderAcrossAppends(t *testing.T) {
	store := openTestStore(t)
	desc := orderDesc(t)

	require.NoError(t, store.Append("orders", orderTuple(t, desc, 1, "a")))
	require.NoError(t, store.Append("orders", orderTuple(t, desc, 2, "b")))
	require.NoError(t, store.Append("orders", orderTuple(t, desc, 3, "c")))

	scan := store.Scan("orders", desc)
	require.NoError(t, scan.Open())
	defer scan.Close()

	tuples, err := iterator.Collect(scan)
	require.NoError(t, err)
	require.Len(t, tuples, 3)
	for i, want := range []string{"1\ta", "2\tb", "3\tc"} {
		assert.Equal(t, want, tuples[i].String())
	}
}

func TestStoreRelationsAreIsolated(t *testing.T) {
	store := openTestStore(t)
	desc := orderDesc(t)

	require.NoError(t, store.Append("orders", orderTuple(t, desc, 1, "a")))
	require.NoError(t, store.Append("returns", orderTuple(t, desc, 9, "z")))

	scan := store.Scan("orders", desc)
	require.NoError(t, scan.Open())
	defer scan.Close()

	n, err := iterator.Count(scan)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStoreScanEmptyRelation(t *testing.T) {
	store := openTestStore(t)
	desc := orderDesc(t)

	scan := store.Scan("nothing", desc)
	require.NoError(t, scan.Open())
	defer scan.Close()

	hasNext, err := scan.HasNext()
	require.NoError(t, err)
	assert.False(t, hasNext)

	_, err = scan.Next()
	assert.Error(t, err)
}

func TestScanRewind(t *testing.T) {
	store := openTestStore(t)
	desc := orderDesc(t)

	require.NoError(t, store.Append("orders",
		orderTuple(t, desc, 1, "a"),
		orderTuple(t, desc, 2, "b"),
	))

	scan := store.Scan("orders", desc)
	require.NoError(t, scan.Open())
	defer scan.Close()

	first, err := iterator.Collect(scan)
	require.NoError(t, err)
	require.Len(t, first, 2)

	require.NoError(t, scan.Rewind())

	second, err := iterator.Collect(scan)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, first[0].String(), second[0].String())
	assert.Equal(t, first[1].String(), second[1].String())
}

func TestScanNotOpened(t *testing.T) {
	store := openTestStore(t)
	desc := orderDesc(t)

	scan := store.Scan("orders", desc)

	_, err := scan.HasNext()
	assert.Error(t, err)
	_, err = scan.Next()
	assert.Error(t, err)
	assert.Error(t, scan.Rewind())

	// Close before Open is a no-op.
	assert.NoError(t, scan.Close())
}

func TestScanCloseIdempotent(t *testing.T) {
	store := openTestStore(t)
	desc := orderDesc(t)

	scan := store.Scan("orders", desc)
	require.NoError(t, scan.Open())
	require.NoError(t, scan.Close())
	require.NoError(t, scan.Close())
}

func TestCodecRoundTrip(t *testing.T) {
	desc, err := tuple.NewTupleDesc(
		[]types.Type{types.IntType, types.StringType, types.BoolType},
		[]string{"n", "s", "b"},
	)
	require.NoError(t, err)

	tup := tuple.NewTuple(desc)
	require.NoError(t, tup.SetField(0, types.NewIntField(-42)))
	require.NoError(t, tup.SetField(1, types.NewStringField("hello", types.StringMaxSize)))
	require.NoError(t, tup.SetField(2, types.NewBoolField(true)))

	data, err := EncodeTuple(tup)
	require.NoError(t, err)
	assert.Len(t, data, int(types.IntType.Size()+types.StringType.Size()+types.BoolType.Size()))

	decoded, err := DecodeTuple(desc, data)
	require.NoError(t, err)
	assert.Equal(t, tup.String(), decoded.String())
}

func TestEncodeTupleUnsetField(t *testing.T) {
	desc, err := tuple.NewTupleDesc([]types.Type{types.IntType}, nil)
	require.NoError(t, err)

	_, err = EncodeTuple(tuple.NewTuple(desc))
	assert.Error(t, err)
}

func TestDecodeTupleTruncated(t *testing.T) {
	desc, err := tuple.NewTupleDesc([]types.Type{types.IntType}, nil)
	require.NoError(t, err)

	_, err = DecodeTuple(desc, []byte{0x01, 0x02})
	assert.Error(t, err)
}
