package join

import (
	"fmt"

	"tupleflow/pkg/tuple"
	"tupleflow/pkg/types"
)

// mockIterator is a controllable child operator for join tests. It can be
// made to fail on any operation and to refuse rewinds.
type mockIterator struct {
	tuples     []*tuple.Tuple
	tupleDesc  *tuple.TupleDescription
	index      int
	isOpen     bool
	rewindable bool

	failOpen bool
	failNext bool

	openCalls   int
	closeCalls  int
	rewindCalls int
}

func newMockIterator(tuples []*tuple.Tuple, tupleDesc *tuple.TupleDescription) *mockIterator {
	return &mockIterator{
		tuples:     tuples,
		tupleDesc:  tupleDesc,
		index:      -1,
		rewindable: true,
	}
}

func (m *mockIterator) Open() error {
	m.openCalls++
	if m.failOpen {
		return fmt.Errorf("mock open error")
	}
	m.isOpen = true
	m.index = -1
	return nil
}

func (m *mockIterator) HasNext() (bool, error) {
	if !m.isOpen {
		return false, fmt.Errorf("iterator not open")
	}
	if m.failNext {
		return false, fmt.Errorf("mock has next error")
	}
	return m.index+1 < len(m.tuples), nil
}

func (m *mockIterator) Next() (*tuple.Tuple, error) {
	if !m.isOpen {
		return nil, fmt.Errorf("iterator not open")
	}
	if m.failNext {
		return nil, fmt.Errorf("mock next error")
	}
	m.index++
	if m.index >= len(m.tuples) {
		return nil, fmt.Errorf("no more tuples")
	}
	return m.tuples[m.index], nil
}

func (m *mockIterator) Rewind() error {
	m.rewindCalls++
	if !m.isOpen {
		return fmt.Errorf("iterator not open")
	}
	if !m.rewindable {
		return fmt.Errorf("rewind not supported")
	}
	m.index = -1
	return nil
}

func (m *mockIterator) Close() error {
	m.closeCalls++
	m.isOpen = false
	return nil
}

func (m *mockIterator) GetTupleDesc() *tuple.TupleDescription {
	return m.tupleDesc
}

// Helper functions for creating test data

func testDesc(fieldTypes []types.Type, fieldNames []string) *tuple.TupleDescription {
	td, _ := tuple.NewTupleDesc(fieldTypes, fieldNames)
	return td
}

func testTuple(tupleDesc *tuple.TupleDescription, values ...any) *tuple.Tuple {
	tup := tuple.NewTuple(tupleDesc)
	for i, val := range values {
		var field types.Field
		switch v := val.(type) {
		case int:
			field = types.NewIntField(int64(v))
		case int64:
			field = types.NewIntField(v)
		case string:
			field = types.NewStringField(v, types.StringMaxSize)
		case bool:
			field = types.NewBoolField(v)
		}
		if err := tup.SetField(i, field); err != nil {
			panic(err)
		}
	}
	return tup
}

// intStrDesc is the (int, string) schema used by most join tests.
func intStrDesc(names ...string) *tuple.TupleDescription {
	return testDesc([]types.Type{types.IntType, types.StringType}, names)
}
