package join

import (
	"fmt"

	"tupleflow/pkg/primitives"
	"tupleflow/pkg/tuple"
)

// JoinPredicate compares one field from each of two tuples using a
// comparison operation. The join operators use it to decide which tuple
// pairs belong in the result.
type JoinPredicate struct {
	field1 int                  // Field index into the first (outer) tuple
	field2 int                  // Field index into the second (inner) tuple
	op     primitives.Predicate // The comparison operation to apply
}

func NewJoinPredicate(field1, field2 int, op primitives.Predicate) (*JoinPredicate, error) {
	if field1 < 0 {
		return nil, fmt.Errorf("field1 index cannot be negative: %d", field1)
	}
	if field2 < 0 {
		return nil, fmt.Errorf("field2 index cannot be negative: %d", field2)
	}

	return &JoinPredicate{
		field1: field1,
		field2: field2,
		op:     op,
	}, nil
}

// NewEquiPredicate creates a predicate testing equality of the two selected
// fields, the only form the hash equi-join accepts.
func NewEquiPredicate(field1, field2 int) (*JoinPredicate, error) {
	return NewJoinPredicate(field1, field2, primitives.Equals)
}

// Filter evaluates the join predicate against two tuples by extracting the
// selected field from each and comparing them.
func (jp *JoinPredicate) Filter(t1, t2 *tuple.Tuple) (bool, error) {
	if t1 == nil || t2 == nil {
		return false, fmt.Errorf("tuples cannot be nil")
	}

	field1, err := t1.GetField(jp.field1)
	if err != nil {
		return false, fmt.Errorf("failed to get field %d from first tuple: %w", jp.field1, err)
	}

	field2, err := t2.GetField(jp.field2)
	if err != nil {
		return false, fmt.Errorf("failed to get field %d from second tuple: %w", jp.field2, err)
	}

	if field1 == nil || field2 == nil {
		return false, fmt.Errorf("join field is unset")
	}

	return field1.Compare(jp.op, field2)
}

// String returns a string representation of the join predicate for debugging.
func (jp *JoinPredicate) String() string {
	return fmt.Sprintf("JoinPredicate(field1=%d %s field2=%d)",
		jp.field1, jp.op.String(), jp.field2)
}

// GetOp returns the comparison operation of the join predicate.
func (jp *JoinPredicate) GetOp() primitives.Predicate {
	return jp.op
}

// GetField1 returns the field index into the first (outer) tuple.
func (jp *JoinPredicate) GetField1() int {
	return jp.field1
}

// GetField2 returns the field index into the second (inner) tuple.
func (jp *JoinPredicate) GetField2() int {
	return jp.field2
}
