package preprocessing

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/tabprep/core/table"
)

func mustTable(t *testing.T, cols ...*table.Column) *table.Table {
	t.Helper()
	tbl, err := table.New(cols...)
	if err != nil {
		t.Fatalf("table.New() failed: %v", err)
	}
	return tbl
}

func targetCol(col *table.Column) *table.Column {
	col.SetRole(table.RoleTarget)
	return col
}

func almostEqual(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	// float32セル表現に合わせた許容誤差
	return math.Abs(a-b) < 1e-4
}

func assertFloats(t *testing.T, tbl *table.Table, name string, want []float64) {
	t.Helper()
	col, err := tbl.Column(name)
	if err != nil {
		t.Fatalf("Column(%q) failed: %v", name, err)
	}
	got := col.Floats()
	if len(got) != len(want) {
		t.Fatalf("column %q: got %d cells, want %d", name, len(got), len(want))
	}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("column %q cell %d = %v, want %v", name, i, got[i], want[i])
		}
	}
}

func assertLabels(t *testing.T, tbl *table.Table, name string, want []string) {
	t.Helper()
	col, err := tbl.Column(name)
	if err != nil {
		t.Fatalf("Column(%q) failed: %v", name, err)
	}
	got := col.Labels()
	if len(got) != len(want) {
		t.Fatalf("column %q: got %d cells, want %d", name, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %q cell %d = %q, want %q", name, i, got[i], want[i])
		}
	}
}

func assertNames(t *testing.T, tbl *table.Table, want []string) {
	t.Helper()
	got := tbl.Names()
	if len(got) != len(want) {
		t.Fatalf("got columns %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got columns %v, want %v", got, want)
		}
	}
}
