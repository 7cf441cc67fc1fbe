package query

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"tupleflow/pkg/iterator"
	"tupleflow/pkg/tuple"
)

// Distinct suppresses duplicate tuples from its child, keeping the first
// occurrence of each. Duplicate detection is by field values; the set of
// seen tuples is held in memory for the lifetime of a scan.
type Distinct struct {
	*iterator.UnaryOperator
	seen mapset.Set[string]
}

// NewDistinct creates a Distinct operator over the given child.
func NewDistinct(child iterator.DbIterator) (*Distinct, error) {
	d := &Distinct{
		seen: mapset.NewThreadUnsafeSet[string](),
	}

	unaryOp, err := iterator.NewUnaryOperator(child, d.readNext)
	if err != nil {
		return nil, err
	}
	d.UnaryOperator = unaryOp

	return d, nil
}

// Open opens the child and starts with an empty seen set.
func (d *Distinct) Open() error {
	if err := d.UnaryOperator.Open(); err != nil {
		return err
	}
	d.seen = mapset.NewThreadUnsafeSet[string]()
	return nil
}

// Close releases the seen set along with the child.
func (d *Distinct) Close() error {
	d.seen = mapset.NewThreadUnsafeSet[string]()
	return d.UnaryOperator.Close()
}

// Rewind restarts the scan with an empty seen set.
func (d *Distinct) Rewind() error {
	if err := d.UnaryOperator.Rewind(); err != nil {
		return err
	}
	d.seen = mapset.NewThreadUnsafeSet[string]()
	return nil
}

// readNext pulls from the child until it finds a tuple not seen before.
func (d *Distinct) readNext() (*tuple.Tuple, error) {
	for {
		t, err := d.FetchNext()
		if err != nil || t == nil {
			return t, err
		}

		key, err := tupleKey(t)
		if err != nil {
			return nil, err
		}

		if d.seen.Add(key) {
			return t, nil
		}
	}
}

// tupleKey builds a dedup key from all field values.
func tupleKey(t *tuple.Tuple) (string, error) {
	if t.TupleDesc == nil {
		return "", fmt.Errorf("tuple has no schema")
	}
	return t.String(), nil
}
