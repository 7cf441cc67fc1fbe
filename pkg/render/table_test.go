package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tupleflow/pkg/tuple"
	"tupleflow/pkg/types"
)

func renderDesc(t *testing.T) *tuple.TupleDescription {
	t.Helper()
	desc, err := tuple.NewTupleDesc(
		[]types.Type{types.IntType, types.StringType},
		[]string{"id", "name"},
	)
	require.NoError(t, err)
	return desc
}

func renderTuple(t *testing.T, desc *tuple.TupleDescription, id int64, name string) *tuple.Tuple {
	t.Helper()
	tup := tuple.NewTuple(desc)
	require.NoError(t, tup.SetField(0, types.NewIntField(id)))
	require.NoError(t, tup.SetField(1, types.NewStringField(name, types.StringMaxSize)))
	return tup
}

func TestFormatTuples(t *testing.T) {
	desc := renderDesc(t)
	tuples := []*tuple.Tuple{
		renderTuple(t, desc, 1, "alice"),
		renderTuple(t, desc, 2, "bob"),
	}

	out := NewTableFormatter().FormatTuples(desc, tuples)

	assert.Contains(t, out, "id")
	assert.Contains(t, out, "name")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "bob")
	assert.Contains(t, out, "2 rows")
}

func TestFormatTuplesEmpty(t *testing.T) {
	desc := renderDesc(t)

	out := NewTableFormatter().FormatTuples(desc, nil)
	assert.Contains(t, out, "No rows")
	assert.Contains(t, out, desc.String())
}

func TestFormatTuplesUnsetField(t *testing.T) {
	desc := renderDesc(t)
	tup := tuple.NewTuple(desc)
	require.NoError(t, tup.SetField(0, types.NewIntField(1)))

	out := NewTableFormatter().FormatTuples(desc, []*tuple.Tuple{tup})
	assert.Contains(t, out, "null")
}

func TestFormatTuplesUnnamedColumns(t *testing.T) {
	desc, err := tuple.NewTupleDesc([]types.Type{types.IntType}, nil)
	require.NoError(t, err)

	tup := tuple.NewTuple(desc)
	require.NoError(t, tup.SetField(0, types.NewIntField(7)))

	out := NewTableFormatter().FormatTuples(desc, []*tuple.Tuple{tup})
	assert.Contains(t, out, "col0")
}

func TestFormatIterator(t *testing.T) {
	desc := renderDesc(t)
	it := tuple.NewIterator([]*tuple.Tuple{renderTuple(t, desc, 1, "alice")}, desc)
	require.NoError(t, it.Open())
	defer it.Close()

	out, err := NewTableFormatter().FormatIterator(it)
	require.NoError(t, err)
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "1 rows")
}

func TestTruncate(t *testing.T) {
	tf := &TableFormatter{MaxWidth: 5, TruncateString: "..."}

	long := strings.Repeat("x", 20)
	got := tf.truncate(long)
	assert.Equal(t, "xxxxx...", got)

	assert.Equal(t, "short", tf.truncate("short"))

	unbounded := &TableFormatter{MaxWidth: 0}
	assert.Equal(t, long, unbounded.truncate(long))
}
