package iterator

import "tupleflow/pkg/tuple"

// DbIterator is the contract shared by every operator in a plan tree, from
// leaf scans to joins. Parents hold children through this interface, so
// arbitrary operator trees compose without a type hierarchy.
type DbIterator interface {
	TupleIterator // Embeds HasNext() and Next()

	// Open initializes the iterator and prepares it for tuple retrieval.
	// It must be called before any other iterator operation. Errors from an
	// underlying source propagate unchanged.
	Open() error

	// Rewind resets the iterator position to the beginning of the data
	// sequence. Fails if the underlying source does not support restarting.
	Rewind() error

	// Close releases all resources associated with the iterator. Calling
	// Close on an already closed iterator is safe and idempotent.
	Close() error

	// GetTupleDesc returns the schema of tuples produced by this iterator.
	// It can be called regardless of iterator state.
	GetTupleDesc() *tuple.TupleDescription
}

// TupleIterator is the minimal pull interface shared by all iterators.
type TupleIterator interface {
	// HasNext checks if more tuples are available without consuming them
	HasNext() (bool, error)

	// Next retrieves the next tuple; fails when none remain
	Next() (*tuple.Tuple, error)
}
