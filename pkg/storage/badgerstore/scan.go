package badgerstore

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"tupleflow/pkg/tuple"
)

// Scan iterates over the tuples of one relation in insertion order. It
// implements the DbIterator contract, so a stored relation can sit directly
// under a join or any other operator. A scan holds a read-only badger
// transaction between Open and Close.
type Scan struct {
	db        *badger.DB
	prefix    []byte
	tupleDesc *tuple.TupleDescription

	txn    *badger.Txn
	it     *badger.Iterator
	opened bool
}

// Open starts a read-only transaction and positions the iterator at the
// first tuple of the relation.
func (s *Scan) Open() error {
	if s.opened {
		return nil
	}

	s.txn = s.db.NewTransaction(false)

	opts := badger.DefaultIteratorOptions
	opts.Prefix = s.prefix
	s.it = s.txn.NewIterator(opts)
	s.it.Rewind()

	s.opened = true
	return nil
}

func (s *Scan) HasNext() (bool, error) {
	if !s.opened {
		return false, fmt.Errorf("iterator not opened")
	}
	return s.it.ValidForPrefix(s.prefix), nil
}

func (s *Scan) Next() (*tuple.Tuple, error) {
	if !s.opened {
		return nil, fmt.Errorf("iterator not opened")
	}
	if !s.it.ValidForPrefix(s.prefix) {
		return nil, fmt.Errorf("no more tuples")
	}

	var result *tuple.Tuple
	err := s.it.Item().Value(func(val []byte) error {
		t, err := DecodeTuple(s.tupleDesc, val)
		if err != nil {
			return err
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read tuple: %w", err)
	}

	s.it.Next()
	return result, nil
}

// Rewind repositions the iterator at the first tuple of the relation.
func (s *Scan) Rewind() error {
	if !s.opened {
		return fmt.Errorf("iterator not opened")
	}
	s.it.Rewind()
	return nil
}

// Close releases the iterator and the transaction. Safe to call more than
// once or before Open.
func (s *Scan) Close() error {
	if s.it != nil {
		s.it.Close()
		s.it = nil
	}
	if s.txn != nil {
		s.txn.Discard()
		s.txn = nil
	}
	s.opened = false
	return nil
}

func (s *Scan) GetTupleDesc() *tuple.TupleDescription {
	return s.tupleDesc
}
