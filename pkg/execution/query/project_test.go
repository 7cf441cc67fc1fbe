package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tupleflow/pkg/iterator"
	"tupleflow/pkg/types"
)

func TestNewProjectValidation(t *testing.T) {
	desc := intStrDesc()

	_, err := NewProject([]int{0}, nil)
	assert.Error(t, err)

	_, err = NewProject(nil, source(desc))
	assert.Error(t, err)

	_, err = NewProject([]int{5}, source(desc))
	assert.Error(t, err, "out of range column must be rejected at construction")
}

func TestProjectSchema(t *testing.T) {
	desc := intStrDesc()

	p, err := NewProject([]int{1}, source(desc))
	require.NoError(t, err)

	out := p.GetTupleDesc()
	require.Equal(t, 1, out.NumFields())
	assert.Equal(t, []string{"name"}, out.FieldNames)

	fieldType, err := out.TypeAtIndex(0)
	require.NoError(t, err)
	assert.Equal(t, types.StringType, fieldType)
}

func TestProjectSelectsColumns(t *testing.T) {
	desc := intStrDesc()
	child := source(desc,
		makeTuple(desc, 1, "a"),
		makeTuple(desc, 2, "b"),
	)

	p, err := NewProject([]int{1, 0}, child)
	require.NoError(t, err)
	require.NoError(t, p.Open())
	defer p.Close()

	tuples, err := iterator.Collect(p)
	require.NoError(t, err)
	require.Len(t, tuples, 2)
	assert.Equal(t, "a\t1", tuples[0].String())
	assert.Equal(t, "b\t2", tuples[1].String())
}

func TestProjectDuplicateColumn(t *testing.T) {
	desc := intStrDesc()
	child := source(desc, makeTuple(desc, 7, "x"))

	p, err := NewProject([]int{0, 0}, child)
	require.NoError(t, err)
	require.NoError(t, p.Open())
	defer p.Close()

	tuples, err := iterator.Collect(p)
	require.NoError(t, err)
	require.Len(t, tuples, 1)
	assert.Equal(t, "7\t7", tuples[0].String())
}

func TestProjectRewind(t *testing.T) {
	desc := intStrDesc()
	child := source(desc,
		makeTuple(desc, 1, "a"),
		makeTuple(desc, 2, "b"),
	)

	p, err := NewProject([]int{0}, child)
	require.NoError(t, err)
	require.NoError(t, p.Open())
	defer p.Close()

	first, err := iterator.Collect(p)
	require.NoError(t, err)

	require.NoError(t, p.Rewind())

	second, err := iterator.Collect(p)
	require.NoError(t, err)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].String(), second[i].String())
	}
}
