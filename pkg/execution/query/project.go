package query

import (
	"fmt"

	"tupleflow/pkg/iterator"
	"tupleflow/pkg/tuple"
	"tupleflow/pkg/types"
)

// Project selects a subset of columns from its child's tuples, in the order
// given. Conceptually: SELECT col1, col3 FROM child.
type Project struct {
	*iterator.UnaryOperator
	projectedCols []int
	tupleDesc     *tuple.TupleDescription
}

// NewProject creates a projection of the given child columns.
func NewProject(projectedCols []int, child iterator.DbIterator) (*Project, error) {
	if child == nil {
		return nil, fmt.Errorf("child operator cannot be nil")
	}
	if len(projectedCols) == 0 {
		return nil, fmt.Errorf("must project at least one field")
	}

	childDesc := child.GetTupleDesc()
	if childDesc == nil {
		return nil, fmt.Errorf("child operator has nil tuple descriptor")
	}

	projectedTypes := make([]types.Type, len(projectedCols))
	fieldNames := make([]string, len(projectedCols))
	for i, col := range projectedCols {
		fieldType, err := childDesc.TypeAtIndex(col)
		if err != nil {
			return nil, fmt.Errorf("projected column %d: %w", col, err)
		}
		projectedTypes[i] = fieldType
		fieldNames[i], _ = childDesc.GetFieldName(col)
	}

	tupleDesc, err := tuple.NewTupleDesc(projectedTypes, fieldNames)
	if err != nil {
		return nil, fmt.Errorf("failed to create output tuple desc: %w", err)
	}

	p := &Project{
		projectedCols: projectedCols,
		tupleDesc:     tupleDesc,
	}

	unaryOp, err := iterator.NewUnaryOperator(child, p.readNext)
	if err != nil {
		return nil, err
	}
	p.UnaryOperator = unaryOp

	return p, nil
}

// GetTupleDesc returns the projected schema.
func (p *Project) GetTupleDesc() *tuple.TupleDescription {
	return p.tupleDesc
}

// readNext maps the next child tuple onto the projected schema.
func (p *Project) readNext() (*tuple.Tuple, error) {
	t, err := p.FetchNext()
	if err != nil || t == nil {
		return nil, err
	}

	result := tuple.NewTuple(p.tupleDesc)
	for i, col := range p.projectedCols {
		field, err := t.GetField(col)
		if err != nil {
			return nil, fmt.Errorf("failed to get field %d: %w", col, err)
		}
		if err := result.SetField(i, field); err != nil {
			return nil, fmt.Errorf("failed to set field %d: %w", i, err)
		}
	}

	return result, nil
}
