package badgerstore

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"tupleflow/pkg/logging"
	"tupleflow/pkg/tuple"
)

// Store is a BadgerDB-backed relation store. Tuples are appended to named
// relations and read back in insertion order through Scan, which implements
// the same iterator contract as every in-memory operator. The store is a
// tuple source collaborator, not a buffer pool: operators above it never
// see pages or transactions.
type Store struct {
	db *badger.DB

	mu   sync.Mutex
	seqs map[string]*badger.Sequence
}

// sequence bandwidth controls how many ids badger leases per fetch
const seqBandwidth = 128

// Open opens (or creates) a store at the given path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // badger's own logging is too chatty for a library

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %s: %w", path, err)
	}

	return &Store{
		db:   db,
		seqs: make(map[string]*badger.Sequence),
	}, nil
}

// Close releases all sequences and closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	for _, seq := range s.seqs {
		_ = seq.Release()
	}
	s.seqs = make(map[string]*badger.Sequence)
	s.mu.Unlock()

	return s.db.Close()
}

// Append stores the given tuples at the end of the named relation.
func (s *Store) Append(relation string, tuples ...*tuple.Tuple) error {
	seq, err := s.sequence(relation)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		for _, t := range tuples {
			n, err := seq.Next()
			if err != nil {
				return fmt.Errorf("failed to advance sequence for %s: %w", relation, err)
			}

			value, err := EncodeTuple(t)
			if err != nil {
				return err
			}

			if err := txn.Set(relationKey(relation, n), value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logging.WithRelation(relation).Debug("appended tuples", "count", len(tuples))
	return nil
}

// Scan returns an iterator over the named relation in insertion order. The
// caller supplies the schema the stored tuples were written with.
func (s *Store) Scan(relation string, desc *tuple.TupleDescription) *Scan {
	return &Scan{
		db:        s.db,
		prefix:    relationPrefix(relation),
		tupleDesc: desc,
	}
}

func (s *Store) sequence(relation string) (*badger.Sequence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq, ok := s.seqs[relation]; ok {
		return seq, nil
	}

	seq, err := s.db.GetSequence([]byte("seq/"+relation), seqBandwidth)
	if err != nil {
		return nil, fmt.Errorf("failed to create sequence for %s: %w", relation, err)
	}
	s.seqs[relation] = seq
	return seq, nil
}

// relationPrefix is the key prefix under which a relation's tuples live.
func relationPrefix(relation string) []byte {
	return []byte("t/" + relation + "/")
}

// relationKey appends the big-endian sequence number to the relation
// prefix, so lexicographic key order equals insertion order.
func relationKey(relation string, n uint64) []byte {
	prefix := relationPrefix(relation)
	key := make([]byte, len(prefix)+8)
	copy(key, prefix)
	binary.BigEndian.PutUint64(key[len(prefix):], n)
	return key
}
