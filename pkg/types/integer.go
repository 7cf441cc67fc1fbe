package types

import (
	"encoding/binary"
	"io"
	"strconv"

	"github.com/spaolacci/murmur3"

	"tupleflow/pkg/primitives"
)

// IntField represents a 64-bit signed integer field
type IntField struct {
	Value int64
}

func NewIntField(value int64) *IntField {
	return &IntField{Value: value}
}

// Serialize writes the value as 8 big-endian bytes
func (f *IntField) Serialize(w io.Writer) error {
	bytes := make([]byte, 8)
	binary.BigEndian.PutUint64(bytes, uint64(f.Value))
	_, err := w.Write(bytes)
	return err
}

func (f *IntField) Compare(op primitives.Predicate, other Field) (bool, error) {
	otherField, ok := other.(*IntField)
	if !ok {
		return false, nil
	}

	switch op {
	case primitives.Equals:
		return f.Value == otherField.Value, nil

	case primitives.LessThan:
		return f.Value < otherField.Value, nil

	case primitives.GreaterThan:
		return f.Value > otherField.Value, nil

	case primitives.LessThanOrEqual:
		return f.Value <= otherField.Value, nil

	case primitives.GreaterThanOrEqual:
		return f.Value >= otherField.Value, nil

	case primitives.NotEqual:
		return f.Value != otherField.Value, nil

	case primitives.Like:
		return f.Value == otherField.Value, nil

	default:
		return false, ErrUnsupportedPredicate
	}
}

func (f *IntField) Type() Type {
	return IntType
}

func (f *IntField) String() string {
	return strconv.FormatInt(f.Value, 10)
}

func (f *IntField) Equals(other Field) bool {
	otherField, ok := other.(*IntField)
	if !ok {
		return false
	}
	return f.Value == otherField.Value
}

func (f *IntField) Hash() (primitives.HashCode, error) {
	bytes := make([]byte, 8)
	binary.BigEndian.PutUint64(bytes, uint64(f.Value))
	return primitives.HashCode(murmur3.Sum64(bytes)), nil
}
