package tuple

import "fmt"

// Iterator is a slice-backed tuple stream. It is the canonical in-memory
// source operator: always rewindable, with the same open/close discipline as
// every other operator in a plan tree.
type Iterator struct {
	tuples    []*Tuple
	tupleDesc *TupleDescription
	index     int
	opened    bool
}

// NewIterator creates an iterator over the given tuples with an explicit
// schema. The schema must be provided even for an empty slice so that parent
// operators can compute their output schema before Open.
func NewIterator(tuples []*Tuple, desc *TupleDescription) *Iterator {
	return &Iterator{
		tuples:    tuples,
		tupleDesc: desc,
		index:     -1,
	}
}

func (it *Iterator) Open() error {
	it.opened = true
	it.index = -1
	return nil
}

func (it *Iterator) Close() error {
	it.opened = false
	return nil
}

func (it *Iterator) HasNext() (bool, error) {
	if !it.opened {
		return false, fmt.Errorf("iterator not opened")
	}
	return it.index+1 < len(it.tuples), nil
}

func (it *Iterator) Next() (*Tuple, error) {
	hasNext, err := it.HasNext()
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, fmt.Errorf("no more tuples")
	}

	it.index++
	return it.tuples[it.index], nil
}

func (it *Iterator) Rewind() error {
	if !it.opened {
		return fmt.Errorf("iterator not opened")
	}
	it.index = -1
	return nil
}

func (it *Iterator) GetTupleDesc() *TupleDescription {
	return it.tupleDesc
}
