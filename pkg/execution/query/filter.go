package query

import (
	"fmt"

	"tupleflow/pkg/iterator"
	"tupleflow/pkg/tuple"
)

// Filter passes through only the tuples from its child that satisfy a
// predicate. The schema is unchanged.
type Filter struct {
	*iterator.UnaryOperator
	predicate *Predicate
}

// NewFilter creates a Filter over the given child with the given predicate.
func NewFilter(predicate *Predicate, child iterator.DbIterator) (*Filter, error) {
	if predicate == nil {
		return nil, fmt.Errorf("predicate cannot be nil")
	}

	f := &Filter{
		predicate: predicate,
	}

	unaryOp, err := iterator.NewUnaryOperator(child, f.readNext)
	if err != nil {
		return nil, err
	}
	f.UnaryOperator = unaryOp

	return f, nil
}

// readNext pulls from the child until a tuple satisfies the predicate.
func (f *Filter) readNext() (*tuple.Tuple, error) {
	for {
		t, err := f.FetchNext()
		if err != nil || t == nil {
			return t, err
		}

		passes, err := f.predicate.Filter(t)
		if err != nil {
			return nil, fmt.Errorf("predicate evaluation failed: %w", err)
		}

		if passes {
			return t, nil
		}
	}
}
