package types

import (
	"encoding/binary"
	"io"
	"strings"

	"github.com/spaolacci/murmur3"

	"tupleflow/pkg/primitives"
)

// StringMaxSize defines the default maximum size for string fields in bytes.
const StringMaxSize = 256

// StringField represents a bounded-length string field.
type StringField struct {
	Value   string // The string value stored in this field
	MaxSize int    // The maximum allowed size for this string field in bytes
}

// NewStringField creates a new StringField with the specified value and
// maximum size. A value longer than maxSize is truncated to fit.
func NewStringField(value string, maxSize int) *StringField {
	if len(value) > maxSize {
		value = value[:maxSize]
	}

	return &StringField{
		Value:   value,
		MaxSize: maxSize,
	}
}

// Serialize writes the string field in binary format:
// 4 bytes for the actual string length (big-endian uint32), the string
// bytes, then padding bytes up to MaxSize.
func (s *StringField) Serialize(w io.Writer) error {
	length := min(len(s.Value), s.MaxSize)

	lengthBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(lengthBytes, uint32(length))

	if _, err := w.Write(lengthBytes); err != nil {
		return err
	}

	if _, err := w.Write([]byte(s.Value[:length])); err != nil {
		return err
	}

	padding := make([]byte, s.MaxSize-length)
	_, err := w.Write(padding)
	return err
}

// Compare evaluates this string against another field. String comparisons
// are lexicographic; Like is substring containment.
func (s *StringField) Compare(op primitives.Predicate, other Field) (bool, error) {
	otherField, ok := other.(*StringField)
	if !ok {
		return false, nil
	}

	cmp := strings.Compare(s.Value, otherField.Value)

	switch op {
	case primitives.Equals:
		return cmp == 0, nil

	case primitives.LessThan:
		return cmp < 0, nil

	case primitives.GreaterThan:
		return cmp > 0, nil

	case primitives.LessThanOrEqual:
		return cmp <= 0, nil

	case primitives.GreaterThanOrEqual:
		return cmp >= 0, nil

	case primitives.NotEqual:
		return cmp != 0, nil

	case primitives.Like:
		return strings.Contains(s.Value, otherField.Value), nil

	default:
		return false, ErrUnsupportedPredicate
	}
}

func (s *StringField) Type() Type {
	return StringType
}

func (s *StringField) String() string {
	return s.Value
}

func (s *StringField) Equals(other Field) bool {
	otherField, ok := other.(*StringField)
	if !ok {
		return false
	}
	return s.Value == otherField.Value
}

func (s *StringField) Hash() (primitives.HashCode, error) {
	return primitives.HashCode(murmur3.Sum64([]byte(s.Value))), nil
}
