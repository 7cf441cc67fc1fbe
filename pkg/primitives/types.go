package primitives

// HashCode represents a hash value computed over a field or key.
// It is used for fast lookups in hash-based data structures such as
// the join index.
type HashCode uint64

// ColumnID identifies a column within a tuple schema
type ColumnID uint32

// RowID counts or addresses rows in a result set (e.g. LIMIT/OFFSET)
type RowID uint64
