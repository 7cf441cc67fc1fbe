package iterator

import (
	"fmt"

	"tupleflow/pkg/tuple"
)

// ReadNextFunc is the function an operator supplies to produce its next
// tuple. It returns nil (and no error) at end of stream.
type ReadNextFunc func() (*tuple.Tuple, error)

// BaseIterator implements the caching and state management shared by all
// operators. It turns a readNext callback into the HasNext/Next protocol by
// holding at most one tuple of lookahead, and tracks the open/closed state
// so that calls before Open are rejected.
type BaseIterator struct {
	nextTuple    *tuple.Tuple // Cached next tuple for lookahead
	opened       bool
	readNextFunc ReadNextFunc
}

// NewBaseIterator creates a base iterator in the closed state.
func NewBaseIterator(readNextFunc ReadNextFunc) *BaseIterator {
	return &BaseIterator{
		readNextFunc: readNextFunc,
	}
}

// HasNext checks whether a next tuple is available without consuming it,
// caching the tuple it reads ahead.
func (it *BaseIterator) HasNext() (bool, error) {
	if !it.opened {
		return false, fmt.Errorf("iterator not opened")
	}

	if it.nextTuple == nil {
		var err error
		it.nextTuple, err = it.readNextFunc()
		if err != nil {
			return false, err
		}
	}
	return it.nextTuple != nil, nil
}

// Next returns the next tuple, consuming the cached lookahead if present.
// Calling Next with no remaining tuple is an error.
func (it *BaseIterator) Next() (*tuple.Tuple, error) {
	if !it.opened {
		return nil, fmt.Errorf("iterator not opened")
	}

	if it.nextTuple == nil {
		var err error
		it.nextTuple, err = it.readNextFunc()
		if err != nil {
			return nil, err
		}
		if it.nextTuple == nil {
			return nil, fmt.Errorf("no more tuples")
		}
	}

	result := it.nextTuple
	it.nextTuple = nil
	return result, nil
}

// Opened reports whether MarkOpened has been called since the last Close.
func (it *BaseIterator) Opened() bool {
	return it.opened
}

// Close clears the cached tuple and marks the iterator closed.
func (it *BaseIterator) Close() error {
	it.nextTuple = nil
	it.opened = false
	return nil
}

// MarkOpened marks the iterator as opened and drops any stale lookahead.
func (it *BaseIterator) MarkOpened() {
	it.opened = true
	it.nextTuple = nil
}

// ClearCache drops the lookahead tuple, e.g. after a rewind.
func (it *BaseIterator) ClearCache() {
	it.nextTuple = nil
}
