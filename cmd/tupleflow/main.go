// Command tupleflow runs a small demonstration of the operator library:
// it seeds one in-memory relation and one badger-backed relation, joins
// them with the hash equi-join, and prints the results.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"tupleflow/pkg/execution/join"
	"tupleflow/pkg/execution/query"
	"tupleflow/pkg/iterator"
	"tupleflow/pkg/logging"
	"tupleflow/pkg/primitives"
	"tupleflow/pkg/render"
	"tupleflow/pkg/storage/badgerstore"
	"tupleflow/pkg/tuple"
	"tupleflow/pkg/types"
)

func main() {
	logging.InitDefault()
	log := logging.GetLogger()

	if err := run(); err != nil {
		color.Red("error: %v", err)
		log.Error("demo failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	usersDesc, err := tuple.NewTupleDesc(
		[]types.Type{types.IntType, types.StringType},
		[]string{"id", "name"},
	)
	if err != nil {
		return err
	}

	ordersDesc, err := tuple.NewTupleDesc(
		[]types.Type{types.IntType, types.StringType, types.IntType},
		[]string{"user_id", "item", "amount"},
	)
	if err != nil {
		return err
	}

	users := []*tuple.Tuple{
		makeUser(usersDesc, 1, "alice"),
		makeUser(usersDesc, 2, "bob"),
		makeUser(usersDesc, 3, "carol"),
	}

	dir, err := os.MkdirTemp("", "tupleflow-demo")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	store, err := badgerstore.Open(filepath.Join(dir, "orders"))
	if err != nil {
		return err
	}
	defer store.Close()

	orders := []*tuple.Tuple{
		makeOrder(ordersDesc, 1, "keyboard", 45),
		makeOrder(ordersDesc, 1, "mouse", 25),
		makeOrder(ordersDesc, 2, "monitor", 180),
		makeOrder(ordersDesc, 4, "desk", 300), // no such user
	}
	if err := store.Append("orders", orders...); err != nil {
		return err
	}

	// users ⨝ orders on users.id = orders.user_id
	predicate, err := join.NewEquiPredicate(0, 0)
	if err != nil {
		return err
	}

	outer := tuple.NewIterator(users, usersDesc)
	inner := store.Scan("orders", ordersDesc)

	hj, err := join.NewHashEquiJoin(predicate, outer, inner)
	if err != nil {
		return err
	}

	if err := hj.Open(); err != nil {
		return err
	}
	defer hj.Close()

	formatter := render.NewTableFormatter()

	color.Green("=== users joined with orders ===")
	out, err := formatter.FormatIterator(hj)
	if err != nil {
		return err
	}
	fmt.Println(out)

	// Same join under a filter and a projection: (name, item, amount)
	// where amount >= 40. The join must be closed first so the new tree
	// can open it as a child.
	if err := hj.Close(); err != nil {
		return err
	}

	minAmount, err := query.NewPredicate(4, primitives.GreaterThanOrEqual, types.NewIntField(40))
	if err != nil {
		return err
	}
	filtered, err := query.NewFilter(minAmount, hj)
	if err != nil {
		return err
	}
	projected, err := query.NewProject([]int{1, 3, 4}, filtered)
	if err != nil {
		return err
	}

	color.Green("=== name, item, amount where amount >= 40 ===")
	out, err = renderFresh(projected)
	if err != nil {
		return err
	}
	fmt.Println(out)

	return nil
}

func renderFresh(op iterator.DbIterator) (string, error) {
	if err := op.Open(); err != nil {
		return "", err
	}
	defer op.Close()
	return render.NewTableFormatter().FormatIterator(op)
}

func makeUser(desc *tuple.TupleDescription, id int64, name string) *tuple.Tuple {
	t := tuple.NewTuple(desc)
	_ = t.SetField(0, types.NewIntField(id))
	_ = t.SetField(1, types.NewStringField(name, types.StringMaxSize))
	return t
}

func makeOrder(desc *tuple.TupleDescription, userID int64, item string, amount int64) *tuple.Tuple {
	t := tuple.NewTuple(desc)
	_ = t.SetField(0, types.NewIntField(userID))
	_ = t.SetField(1, types.NewStringField(item, types.StringMaxSize))
	_ = t.SetField(2, types.NewIntField(amount))
	return t
}
