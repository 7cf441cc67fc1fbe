package tuple

import (
	"testing"

	"tupleflow/pkg/types"
)

func TestNewTupleDesc(t *testing.T) {
	tests := []struct {
		name       string
		fieldTypes []types.Type
		fieldNames []string
		wantErr    bool
	}{
		{"valid with names", []types.Type{types.IntType, types.StringType}, []string{"id", "name"}, false},
		{"valid without names", []types.Type{types.IntType}, nil, false},
		{"empty types", []types.Type{}, nil, true},
		{"name count mismatch", []types.Type{types.IntType}, []string{"a", "b"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTupleDesc(tt.fieldTypes, tt.fieldNames)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewTupleDesc() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTupleDescDefensiveCopy(t *testing.T) {
	fieldTypes := []types.Type{types.IntType}
	names := []string{"id"}
	td, err := NewTupleDesc(fieldTypes, names)
	if err != nil {
		t.Fatalf("NewTupleDesc() error = %v", err)
	}

	fieldTypes[0] = types.StringType
	names[0] = "changed"

	if got, _ := td.TypeAtIndex(0); got != types.IntType {
		t.Error("descriptor shares the caller's type slice")
	}
	if got, _ := td.GetFieldName(0); got != "id" {
		t.Error("descriptor shares the caller's name slice")
	}
}

func TestGetFieldName(t *testing.T) {
	td := mustDesc(t, []types.Type{types.IntType, types.StringType}, []string{"id", "name"})

	name, err := td.GetFieldName(1)
	if err != nil {
		t.Fatalf("GetFieldName(1) error = %v", err)
	}
	if name != "name" {
		t.Errorf("GetFieldName(1) = %q, want %q", name, "name")
	}

	if _, err := td.GetFieldName(5); err == nil {
		t.Error("expected out of bounds error")
	}

	unnamed := mustDesc(t, []types.Type{types.IntType}, nil)
	name, err = unnamed.GetFieldName(0)
	if err != nil {
		t.Fatalf("GetFieldName(0) error = %v", err)
	}
	if name != "" {
		t.Errorf("unnamed field name = %q, want empty", name)
	}
}

func TestGetSize(t *testing.T) {
	td := mustDesc(t, []types.Type{types.IntType, types.StringType, types.BoolType}, nil)

	want := types.IntType.Size() + types.StringType.Size() + types.BoolType.Size()
	if got := td.GetSize(); got != want {
		t.Errorf("GetSize() = %d, want %d", got, want)
	}
}

func TestTupleDescEquals(t *testing.T) {
	a := mustDesc(t, []types.Type{types.IntType, types.StringType}, []string{"id", "name"})
	b := mustDesc(t, []types.Type{types.IntType, types.StringType}, []string{"x", "y"})
	c := mustDesc(t, []types.Type{types.StringType, types.IntType}, nil)

	if !a.Equals(b) {
		t.Error("descriptors with same types must be equal regardless of names")
	}
	if a.Equals(c) {
		t.Error("descriptors with different type order must not be equal")
	}
	if a.Equals(nil) {
		t.Error("descriptor must not equal nil")
	}
}

func TestFindFieldIndex(t *testing.T) {
	td := mustDesc(t, []types.Type{types.IntType, types.StringType}, []string{"id", "name"})

	i, err := td.FindFieldIndex("name")
	if err != nil {
		t.Fatalf("FindFieldIndex() error = %v", err)
	}
	if i != 1 {
		t.Errorf("FindFieldIndex(name) = %d, want 1", i)
	}

	if _, err := td.FindFieldIndex("missing"); err == nil {
		t.Error("expected error for missing column")
	}
}

func TestCombine(t *testing.T) {
	left := mustDesc(t, []types.Type{types.IntType, types.StringType}, []string{"id", "name"})
	right := mustDesc(t, []types.Type{types.IntType}, []string{"ref"})

	combined := Combine(left, right)
	if combined.NumFields() != 3 {
		t.Fatalf("combined NumFields = %d, want 3", combined.NumFields())
	}

	wantNames := []string{"id", "name", "ref"}
	for i, want := range wantNames {
		got, _ := combined.GetFieldName(i)
		if got != want {
			t.Errorf("field %d name = %q, want %q", i, got, want)
		}
	}
}

func TestCombineMixedNaming(t *testing.T) {
	named := mustDesc(t, []types.Type{types.IntType}, []string{"id"})
	unnamed := mustDesc(t, []types.Type{types.StringType}, nil)

	combined := Combine(named, unnamed)
	if combined.NumFields() != 2 {
		t.Fatalf("combined NumFields = %d, want 2", combined.NumFields())
	}

	if name, _ := combined.GetFieldName(0); name != "id" {
		t.Errorf("field 0 name = %q, want %q", name, "id")
	}
	if name, _ := combined.GetFieldName(1); name != "" {
		t.Errorf("field 1 name = %q, want empty", name)
	}
}

func TestCombineNil(t *testing.T) {
	td := mustDesc(t, []types.Type{types.IntType}, nil)

	if got := Combine(td, nil); got != td {
		t.Error("Combine(td, nil) should return td")
	}
	if got := Combine(nil, td); got != td {
		t.Error("Combine(nil, td) should return td")
	}
	if got := Combine(nil, nil); got != nil {
		t.Error("Combine(nil, nil) should return nil")
	}
}
