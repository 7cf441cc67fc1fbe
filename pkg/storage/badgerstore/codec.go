package badgerstore

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"tupleflow/pkg/tuple"
	"tupleflow/pkg/types"
)

// EncodeTuple serializes all fields of a tuple in schema order using the
// fixed binary field format.
func EncodeTuple(t *tuple.Tuple) ([]byte, error) {
	var buf bytes.Buffer

	for i := 0; i < t.TupleDesc.NumFields(); i++ {
		field, err := t.GetField(i)
		if err != nil {
			return nil, err
		}
		if field == nil {
			return nil, fmt.Errorf("cannot encode tuple with unset field %d", i)
		}
		if err := field.Serialize(&buf); err != nil {
			return nil, fmt.Errorf("failed to serialize field %d: %w", i, err)
		}
	}

	return buf.Bytes(), nil
}

// DecodeTuple reconstructs a tuple of the given schema from its binary
// encoding. String fields are assumed to use the default maximum size.
func DecodeTuple(desc *tuple.TupleDescription, data []byte) (*tuple.Tuple, error) {
	t := tuple.NewTuple(desc)
	offset := 0

	for i := 0; i < desc.NumFields(); i++ {
		fieldType, err := desc.TypeAtIndex(i)
		if err != nil {
			return nil, err
		}

		size := int(fieldType.Size())
		if offset+size > len(data) {
			return nil, fmt.Errorf("truncated tuple data at field %d", i)
		}

		var field types.Field
		switch fieldType {
		case types.IntType:
			value := int64(binary.BigEndian.Uint64(data[offset:]))
			field = types.NewIntField(value)

		case types.StringType:
			length := int(binary.BigEndian.Uint32(data[offset:]))
			if length > types.StringMaxSize {
				return nil, fmt.Errorf("corrupt string length %d at field %d", length, i)
			}
			value := string(data[offset+4 : offset+4+length])
			field = types.NewStringField(value, types.StringMaxSize)

		case types.BoolType:
			field = types.NewBoolField(data[offset] != 0)

		default:
			return nil, fmt.Errorf("unknown field type %v at field %d", fieldType, i)
		}

		if err := t.SetField(i, field); err != nil {
			return nil, err
		}
		offset += size
	}

	return t, nil
}
