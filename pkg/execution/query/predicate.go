package query

import (
	"fmt"

	"tupleflow/pkg/primitives"
	"tupleflow/pkg/tuple"
	"tupleflow/pkg/types"
)

// Predicate compares one field of a tuple against a constant operand. It is
// the single-tuple counterpart of join.JoinPredicate, used by the Filter
// operator.
type Predicate struct {
	fieldIndex int
	op         primitives.Predicate
	operand    types.Field
}

func NewPredicate(fieldIndex int, op primitives.Predicate, operand types.Field) (*Predicate, error) {
	if fieldIndex < 0 {
		return nil, fmt.Errorf("field index cannot be negative: %d", fieldIndex)
	}
	if operand == nil {
		return nil, fmt.Errorf("operand field cannot be nil")
	}

	return &Predicate{
		fieldIndex: fieldIndex,
		op:         op,
		operand:    operand,
	}, nil
}

// Filter evaluates the predicate against a tuple.
func (p *Predicate) Filter(t *tuple.Tuple) (bool, error) {
	if t == nil {
		return false, fmt.Errorf("tuple cannot be nil")
	}

	field, err := t.GetField(p.fieldIndex)
	if err != nil {
		return false, fmt.Errorf("failed to get field %d: %w", p.fieldIndex, err)
	}
	if field == nil {
		return false, fmt.Errorf("field %d is unset", p.fieldIndex)
	}

	return field.Compare(p.op, p.operand)
}

func (p *Predicate) String() string {
	return fmt.Sprintf("Predicate(field=%d %s %s)", p.fieldIndex, p.op, p.operand)
}
