package join

import (
	"fmt"

	"tupleflow/pkg/iterator"
	"tupleflow/pkg/tuple"
)

// NestedLoopJoin implements the relational join for arbitrary predicates by
// scanning the right child once per left tuple. It is the fallback for
// predicates the hash equi-join cannot handle. The right child must support
// Rewind.
type NestedLoopJoin struct {
	*iterator.BinaryOperator
	predicate   *JoinPredicate
	tupleDesc   *tuple.TupleDescription
	currentLeft *tuple.Tuple
}

// NewNestedLoopJoin creates a nested loop join over the given children with
// any comparison predicate.
func NewNestedLoopJoin(predicate *JoinPredicate, leftChild, rightChild iterator.DbIterator) (*NestedLoopJoin, error) {
	if predicate == nil {
		return nil, fmt.Errorf("join predicate cannot be nil")
	}
	if leftChild == nil || rightChild == nil {
		return nil, fmt.Errorf("child operators cannot be nil")
	}

	leftDesc := leftChild.GetTupleDesc()
	rightDesc := rightChild.GetTupleDesc()
	if leftDesc == nil || rightDesc == nil {
		return nil, fmt.Errorf("child operators must have valid tuple descriptors")
	}

	nj := &NestedLoopJoin{
		predicate: predicate,
		tupleDesc: tuple.Combine(leftDesc, rightDesc),
	}

	binOp, err := iterator.NewBinaryOperator(leftChild, rightChild, nj.readNext)
	if err != nil {
		return nil, err
	}
	nj.BinaryOperator = binOp

	return nj, nil
}

// GetTupleDesc returns the combined schema, left fields then right fields.
func (nj *NestedLoopJoin) GetTupleDesc() *tuple.TupleDescription {
	return nj.tupleDesc
}

// Rewind restarts the join from the first left tuple.
func (nj *NestedLoopJoin) Rewind() error {
	nj.currentLeft = nil
	return nj.BinaryOperator.Rewind()
}

// Close releases resources and forgets the current left tuple.
func (nj *NestedLoopJoin) Close() error {
	nj.currentLeft = nil
	return nj.BinaryOperator.Close()
}

// readNext scans the right child for a tuple matching the current left
// tuple, advancing the left child and rewinding the right child whenever
// the right side is exhausted.
func (nj *NestedLoopJoin) readNext() (*tuple.Tuple, error) {
	for {
		if nj.currentLeft == nil {
			leftTuple, err := nj.FetchLeft()
			if err != nil {
				return nil, err
			}
			if leftTuple == nil {
				return nil, nil
			}
			nj.currentLeft = leftTuple
		}

		rightTuple, err := nj.FetchRight()
		if err != nil {
			return nil, err
		}

		if rightTuple == nil {
			leftTuple, err := nj.FetchLeft()
			if err != nil {
				return nil, err
			}
			if leftTuple == nil {
				nj.currentLeft = nil
				return nil, nil
			}

			nj.currentLeft = leftTuple
			if err := nj.GetRightChild().Rewind(); err != nil {
				return nil, err
			}
			continue
		}

		match, err := nj.predicate.Filter(nj.currentLeft, rightTuple)
		if err != nil {
			return nil, err
		}
		if match {
			return tuple.CombineTuples(nj.currentLeft, rightTuple)
		}
	}
}
