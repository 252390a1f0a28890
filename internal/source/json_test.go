package source

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestReadJSON(t *testing.T) {
	input := `[
		{"b": -1, "a": 1, "name": "x"},
		{"b": 2, "a": 0},
		{"b": null, "a": 3, "name": "z"}
	]`

	tbl, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	if got := tbl.ColumnNames(); !reflect.DeepEqual(got, []string{"b", "a", "name"}) {
		t.Errorf("ColumnNames() = %v, want keys in first-seen order", got)
	}

	b, _ := tbl.Column("b")
	if !b.IsNumeric() || !b.Cells[2].IsMissing() {
		t.Errorf("column b = %+v, want numeric with trailing missing", b)
	}

	name, _ := tbl.Column("name")
	if name.IsNumeric() || !name.Cells[1].IsMissing() {
		t.Errorf("column name = %+v, want text with absent key as missing", name)
	}
}

func TestReadJSON_KeyOrderAcrossRecords(t *testing.T) {
	input := `[{"z": 1}, {"y": 2, "z": 3}, {"x": 4, "y": 5}]`

	tbl, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if got := tbl.ColumnNames(); !reflect.DeepEqual(got, []string{"z", "y", "x"}) {
		t.Errorf("ColumnNames() = %v, want [z y x]", got)
	}
}

func TestReadJSON_SingleObject(t *testing.T) {
	tbl, err := ReadJSON(strings.NewReader(`{"v": 1.5}`))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if tbl.NumRows() != 1 {
		t.Errorf("NumRows() = %d, want 1", tbl.NumRows())
	}
}

func TestReadJSON_Errors(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("  ")); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("blank input error = %v, want ErrEmptyFile", err)
	}
	if _, err := ReadJSON(strings.NewReader("[]")); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("empty array error = %v, want ErrEmptyFile", err)
	}
	if _, err := ReadJSON(strings.NewReader("[1, 2]")); err == nil || !strings.Contains(err.Error(), "invalid json") {
		t.Errorf("non-object array error = %v, want invalid json", err)
	}
	if _, err := ReadJSON(strings.NewReader(`[{"a": 1}`)); err == nil || !strings.Contains(err.Error(), "invalid json") {
		t.Errorf("truncated array error = %v, want invalid json", err)
	}
}
