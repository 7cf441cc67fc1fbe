package types

import (
	"io"

	"tupleflow/pkg/primitives"
)

// Field is the value stored in one slot of a tuple. Implementations wrap a
// primitive value plus its type. Equality and hashing of fields drive join
// key comparison, so Equals and Hash must agree: equal fields hash equally.
type Field interface {
	// Serialize writes the field in its fixed binary format
	Serialize(w io.Writer) error

	// Compare evaluates this field against other under the given operation.
	// Comparing fields of different concrete types yields false, not an error.
	Compare(op primitives.Predicate, other Field) (bool, error)

	// Type returns the data type of this field
	Type() Type

	String() string

	// Equals reports value equality with another field of the same type
	Equals(other Field) bool

	// Hash returns a hash of the field value
	Hash() (primitives.HashCode, error)
}
