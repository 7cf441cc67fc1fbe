package types

import "errors"

// ErrUnsupportedPredicate is returned when a field type cannot evaluate
// the requested comparison operation.
var ErrUnsupportedPredicate = errors.New("unsupported predicate operation")
