package iterator

import "tupleflow/pkg/tuple"

// Iterate encapsulates the common HasNext/Next loop over any tuple stream.
// The processFunc receives each tuple and controls iteration flow: return
// (false, nil) to stop early, (true, nil) to continue, or an error to abort.
func Iterate(iter TupleIterator, processFunc func(*tuple.Tuple) (continueLooping bool, err error)) error {
	for {
		hasNext, err := iter.HasNext()
		if err != nil {
			return err
		}
		if !hasNext {
			break
		}

		tup, err := iter.Next()
		if err != nil {
			return err
		}

		shouldContinue, err := processFunc(tup)
		if err != nil {
			return err
		}
		if !shouldContinue {
			break
		}
	}

	return nil
}

// ForEach applies a processing function to each tuple in the iterator.
// The iterator must be opened before calling this.
func ForEach(iter TupleIterator, processFunc func(*tuple.Tuple) error) error {
	return Iterate(iter, func(tup *tuple.Tuple) (bool, error) {
		err := processFunc(tup)
		return true, err
	})
}

// Collect drains the iterator and returns all tuples as a slice.
func Collect(iter TupleIterator) ([]*tuple.Tuple, error) {
	var results []*tuple.Tuple

	err := Iterate(iter, func(tup *tuple.Tuple) (bool, error) {
		results = append(results, tup)
		return true, nil
	})

	return results, err
}

// Count returns the total number of tuples in the iterator, consuming it.
func Count(iter TupleIterator) (int, error) {
	count := 0
	err := Iterate(iter, func(_ *tuple.Tuple) (bool, error) {
		count++
		return true, nil
	})
	return count, err
}
