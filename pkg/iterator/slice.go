package iterator

import "fmt"

// SliceIterator is a lightweight iterator over a slice of any type. It has
// no lifecycle management and is cheap to create, which makes it suitable
// for transient cursors such as the bucket cursor inside a hash join.
// Not thread-safe.
type SliceIterator[T any] struct {
	data         []T
	currentIndex int
}

// NewSliceIterator creates an iterator positioned at the beginning of data.
func NewSliceIterator[T any](data []T) *SliceIterator[T] {
	return &SliceIterator[T]{
		data: data,
	}
}

// HasNext reports whether at least one more element remains.
func (it *SliceIterator[T]) HasNext() bool {
	return it.currentIndex < len(it.data)
}

// Next returns the next element and advances the position.
func (it *SliceIterator[T]) Next() (T, error) {
	var zero T

	if it.currentIndex >= len(it.data) {
		return zero, fmt.Errorf("no more elements in slice iterator")
	}

	element := it.data[it.currentIndex]
	it.currentIndex++
	return element, nil
}

// Rewind resets the read position to the beginning of the slice.
func (it *SliceIterator[T]) Rewind() {
	it.currentIndex = 0
}

// Len returns the total number of elements.
func (it *SliceIterator[T]) Len() int {
	return len(it.data)
}
