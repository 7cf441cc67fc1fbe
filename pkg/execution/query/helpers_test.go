package query

import (
	"tupleflow/pkg/tuple"
	"tupleflow/pkg/types"
)

func intStrDesc() *tuple.TupleDescription {
	td, _ := tuple.NewTupleDesc(
		[]types.Type{types.IntType, types.StringType},
		[]string{"id", "name"},
	)
	return td
}

func makeTuple(desc *tuple.TupleDescription, id int64, name string) *tuple.Tuple {
	t := tuple.NewTuple(desc)
	_ = t.SetField(0, types.NewIntField(id))
	_ = t.SetField(1, types.NewStringField(name, types.StringMaxSize))
	return t
}

func source(desc *tuple.TupleDescription, tuples ...*tuple.Tuple) *tuple.Iterator {
	return tuple.NewIterator(tuples, desc)
}
