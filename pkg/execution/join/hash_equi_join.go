package join

import (
	"errors"
	"fmt"

	"tupleflow/pkg/iterator"
	"tupleflow/pkg/primitives"
	"tupleflow/pkg/tuple"
)

// HashEquiJoin implements the relational equi-join with a hash-based
// algorithm. Open drains the outer child completely into an in-memory index
// keyed by the hash of the join field; the inner child is then probed one
// tuple at a time, and each matching (outer, inner) pair is emitted as a
// concatenated tuple across repeated Next calls.
//
// The operator implements DbIterator itself, so it nests under any other
// operator in a plan tree. The index is private to the operator and is
// rebuilt from scratch whenever needed, never persisted or shared.
//
// Memory: one full materialization of the outer relation, plus a cursor into
// one bucket. Execution is single-threaded and pull-driven; the caller
// controls pacing entirely through HasNext/Next.
type HashEquiJoin struct {
	base       *iterator.BaseIterator
	predicate  *JoinPredicate
	outerChild iterator.DbIterator
	innerChild iterator.DbIterator
	tupleDesc  *tuple.TupleDescription

	// index maps the hash of the outer join field to the bucket of outer
	// tuples sharing it, in insertion order. Hash collisions are screened
	// out by the predicate re-check during the probe.
	index      map[primitives.HashCode][]*tuple.Tuple
	bucket     *iterator.SliceIterator[*tuple.Tuple] // active bucket cursor, nil when none
	innerTuple *tuple.Tuple                          // current probe tuple, nil when inner exhausted
}

// NewHashEquiJoin creates a hash equi-join over the given children. The
// outer child is materialized into the index; the inner child is probed.
// Only equality predicates are supported; general predicates belong to
// NestedLoopJoin.
func NewHashEquiJoin(predicate *JoinPredicate, outerChild, innerChild iterator.DbIterator) (*HashEquiJoin, error) {
	if predicate == nil {
		return nil, fmt.Errorf("join predicate cannot be nil")
	}
	if predicate.GetOp() != primitives.Equals {
		return nil, fmt.Errorf("hash equi-join requires an equality predicate, got %s", predicate.GetOp())
	}
	if outerChild == nil {
		return nil, fmt.Errorf("outer child operator cannot be nil")
	}
	if innerChild == nil {
		return nil, fmt.Errorf("inner child operator cannot be nil")
	}

	outerDesc := outerChild.GetTupleDesc()
	innerDesc := innerChild.GetTupleDesc()
	if outerDesc == nil || innerDesc == nil {
		return nil, fmt.Errorf("child operators must have valid tuple descriptors")
	}

	hj := &HashEquiJoin{
		predicate:  predicate,
		outerChild: outerChild,
		innerChild: innerChild,
		tupleDesc:  tuple.Combine(outerDesc, innerDesc),
		index:      make(map[primitives.HashCode][]*tuple.Tuple),
	}

	hj.base = iterator.NewBaseIterator(hj.readNext)
	return hj, nil
}

// Open prepares the join for iteration: it opens both children, performs
// the build pass over the outer child, and positions the probe on the first
// inner tuple. Opening an already open join is an error. A child failure
// propagates unchanged and leaves the operator in an undefined state that
// only Close can reset.
func (hj *HashEquiJoin) Open() error {
	if hj.base.Opened() {
		return fmt.Errorf("hash equi-join already open")
	}

	if err := hj.outerChild.Open(); err != nil {
		return err
	}
	if err := hj.innerChild.Open(); err != nil {
		return err
	}

	if err := hj.buildIndex(); err != nil {
		return err
	}

	if err := hj.advanceInner(); err != nil {
		return err
	}

	hj.bucket = nil
	hj.base.MarkOpened()
	return nil
}

// Close releases the index, the bucket cursor and the probe tuple, and
// closes both children. It is safe to call from any state, including before
// Open or after a previous Close, and never fails on an already closed
// child.
func (hj *HashEquiJoin) Close() error {
	var errs []error

	if err := hj.outerChild.Close(); err != nil {
		errs = append(errs, fmt.Errorf("outer child close: %w", err))
	}
	if err := hj.innerChild.Close(); err != nil {
		errs = append(errs, fmt.Errorf("inner child close: %w", err))
	}

	hj.index = make(map[primitives.HashCode][]*tuple.Tuple)
	hj.bucket = nil
	hj.innerTuple = nil

	if err := hj.base.Close(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Rewind fully restarts the join: both children are re-scanned from their
// beginnings and the index is rebuilt.
func (hj *HashEquiJoin) Rewind() error {
	if err := hj.Close(); err != nil {
		return err
	}
	return hj.Open()
}

// GetTupleDesc returns the output schema: the outer schema followed
// positionally by the inner schema.
func (hj *HashEquiJoin) GetTupleDesc() *tuple.TupleDescription {
	return hj.tupleDesc
}

// HasNext checks if there are more joined tuples available.
func (hj *HashEquiJoin) HasNext() (bool, error) { return hj.base.HasNext() }

// Next returns the next joined tuple.
func (hj *HashEquiJoin) Next() (*tuple.Tuple, error) { return hj.base.Next() }

// GetPredicate returns the equality predicate of this join.
func (hj *HashEquiJoin) GetPredicate() *JoinPredicate {
	return hj.predicate
}

// OuterFieldName returns the name of the outer join field.
func (hj *HashEquiJoin) OuterFieldName() string {
	name, _ := hj.outerChild.GetTupleDesc().GetFieldName(hj.predicate.GetField1())
	return name
}

// InnerFieldName returns the name of the inner join field.
func (hj *HashEquiJoin) InnerFieldName() string {
	name, _ := hj.innerChild.GetTupleDesc().GetFieldName(hj.predicate.GetField2())
	return name
}

// readNext produces the next joined tuple, or nil at end of stream.
//
// While a probe tuple exists: with no active bucket cursor, the probe
// tuple's join field is hashed and looked up in the index (a miss advances
// the probe); with an active cursor, the next outer candidate is tested
// against the predicate and emitted on a match, retaining the cursor
// position so the following call resumes inside the same bucket. When the
// inner child is exhausted, the index is rebuilt from the outer child and
// the inner child is rewound. The outer child is not rewound, so in normal
// single-pass use the rebuild finds it already drained, yielding an empty
// index and clean termination; an empty index always means end of stream.
func (hj *HashEquiJoin) readNext() (*tuple.Tuple, error) {
	for len(hj.index) > 0 {
		for hj.innerTuple != nil {
			if hj.bucket == nil {
				key, err := hj.joinKey(hj.innerTuple, hj.predicate.GetField2())
				if err != nil {
					return nil, err
				}

				bucket, ok := hj.index[key]
				if !ok {
					if err := hj.advanceInner(); err != nil {
						return nil, err
					}
					continue
				}
				hj.bucket = iterator.NewSliceIterator(bucket)
			}

			if hj.bucket.HasNext() {
				outerTuple, err := hj.bucket.Next()
				if err != nil {
					return nil, err
				}

				match, err := hj.predicate.Filter(outerTuple, hj.innerTuple)
				if err != nil {
					return nil, err
				}
				if match {
					return tuple.CombineTuples(outerTuple, hj.innerTuple)
				}
			} else {
				if err := hj.advanceInner(); err != nil {
					return nil, err
				}
				hj.bucket = nil
			}
		}

		if err := hj.buildIndex(); err != nil {
			return nil, err
		}
		if err := hj.innerChild.Rewind(); err != nil {
			return nil, err
		}
		if err := hj.advanceInner(); err != nil {
			return nil, err
		}
		hj.bucket = nil
	}

	return nil, nil
}

// buildIndex performs a build pass: it clears the index and drains the
// outer child into it, keyed by the hash of the join field. Bucket order is
// outer insertion order.
func (hj *HashEquiJoin) buildIndex() error {
	hj.index = make(map[primitives.HashCode][]*tuple.Tuple)

	for {
		hasNext, err := hj.outerChild.HasNext()
		if err != nil {
			return err
		}
		if !hasNext {
			return nil
		}

		outerTuple, err := hj.outerChild.Next()
		if err != nil {
			return err
		}

		key, err := hj.joinKey(outerTuple, hj.predicate.GetField1())
		if err != nil {
			return err
		}

		hj.index[key] = append(hj.index[key], outerTuple)
	}
}

// advanceInner moves the probe to the next inner tuple, recording
// exhaustion as a nil probe tuple.
func (hj *HashEquiJoin) advanceInner() error {
	hasNext, err := hj.innerChild.HasNext()
	if err != nil {
		return err
	}
	if !hasNext {
		hj.innerTuple = nil
		return nil
	}

	hj.innerTuple, err = hj.innerChild.Next()
	return err
}

// joinKey hashes the join field of t at fieldIndex.
func (hj *HashEquiJoin) joinKey(t *tuple.Tuple, fieldIndex int) (primitives.HashCode, error) {
	field, err := t.GetField(fieldIndex)
	if err != nil {
		return 0, fmt.Errorf("invalid join key at field %d: %w", fieldIndex, err)
	}
	if field == nil {
		return 0, fmt.Errorf("join field %d is unset", fieldIndex)
	}
	return field.Hash()
}
