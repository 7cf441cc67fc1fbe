package query

import (
	"fmt"

	"tupleflow/pkg/iterator"
	"tupleflow/pkg/primitives"
	"tupleflow/pkg/tuple"
)

// Limit restricts the number of tuples returned by its child and optionally
// skips a number of tuples from the beginning.
//
// Example: SELECT * FROM t LIMIT 10 OFFSET 5
type Limit struct {
	*iterator.UnaryOperator
	limit  primitives.RowID // Maximum number of tuples to return
	offset primitives.RowID // Number of tuples to skip from the beginning
	count  primitives.RowID // Number of tuples returned so far
}

// NewLimit creates a Limit operator over the given child.
func NewLimit(child iterator.DbIterator, limit, offset primitives.RowID) (*Limit, error) {
	if child == nil {
		return nil, fmt.Errorf("child operator cannot be nil")
	}

	lo := &Limit{
		limit:  limit,
		offset: offset,
	}

	unaryOp, err := iterator.NewUnaryOperator(child, lo.readNext)
	if err != nil {
		return nil, err
	}
	lo.UnaryOperator = unaryOp

	return lo, nil
}

// Open opens the child and skips the offset tuples.
func (lo *Limit) Open() error {
	if err := lo.UnaryOperator.Open(); err != nil {
		return err
	}

	lo.count = 0
	return lo.skipOffset()
}

// Rewind resets to the initial state, skipping the offset again.
func (lo *Limit) Rewind() error {
	lo.count = 0

	if err := lo.UnaryOperator.Rewind(); err != nil {
		return err
	}

	return lo.skipOffset()
}

// readNext returns the next tuple within the limit range, or nil once the
// limit has been reached.
func (lo *Limit) readNext() (*tuple.Tuple, error) {
	if lo.count >= lo.limit {
		return nil, nil
	}

	t, err := lo.FetchNext()
	if err != nil || t == nil {
		return t, err
	}

	lo.count++
	return t, nil
}

// skipOffset discards offset tuples from the child, stopping early if the
// child has fewer.
func (lo *Limit) skipOffset() error {
	var i primitives.RowID
	for i = 0; i < lo.offset; i++ {
		t, err := lo.FetchNext()
		if err != nil {
			return err
		}
		if t == nil {
			break
		}
	}
	return nil
}
