package types

import (
	"io"

	"github.com/spaolacci/murmur3"

	"tupleflow/pkg/primitives"
)

// BoolField represents a boolean field
type BoolField struct {
	Value bool
}

func NewBoolField(value bool) *BoolField {
	return &BoolField{Value: value}
}

func (f *BoolField) Serialize(w io.Writer) error {
	b := []byte{0}
	if f.Value {
		b[0] = 1
	}
	_, err := w.Write(b)
	return err
}

// Compare treats false < true for ordering operations.
func (f *BoolField) Compare(op primitives.Predicate, other Field) (bool, error) {
	otherField, ok := other.(*BoolField)
	if !ok {
		return false, nil
	}

	toInt := func(b bool) int {
		if b {
			return 1
		}
		return 0
	}
	a, b := toInt(f.Value), toInt(otherField.Value)

	switch op {
	case primitives.Equals, primitives.Like:
		return a == b, nil

	case primitives.LessThan:
		return a < b, nil

	case primitives.GreaterThan:
		return a > b, nil

	case primitives.LessThanOrEqual:
		return a <= b, nil

	case primitives.GreaterThanOrEqual:
		return a >= b, nil

	case primitives.NotEqual:
		return a != b, nil

	default:
		return false, ErrUnsupportedPredicate
	}
}

func (f *BoolField) Type() Type {
	return BoolType
}

func (f *BoolField) String() string {
	if f.Value {
		return "true"
	}
	return "false"
}

func (f *BoolField) Equals(other Field) bool {
	otherField, ok := other.(*BoolField)
	if !ok {
		return false
	}
	return f.Value == otherField.Value
}

func (f *BoolField) Hash() (primitives.HashCode, error) {
	b := []byte{0}
	if f.Value {
		b[0] = 1
	}
	return primitives.HashCode(murmur3.Sum64(b)), nil
}
