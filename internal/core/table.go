package core

// table.go defines the in-memory Table and its read-only accessors.
//
// A Table is built once and then treated as immutable: every operation in
// this package that produces a table returns a new one with copied cells.

import (
	"errors"
	"fmt"
)

var (
	// ErrColumnNotFound is returned when a column name is not in the table.
	ErrColumnNotFound = errors.New("column not found")

	// ErrDuplicateColumn is returned when a table is built with a repeated name.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrRaggedTable is returned when columns disagree on row count.
	ErrRaggedTable = errors.New("columns have different row counts")
)

// Table is an ordered collection of named columns with a shared row count.
type Table struct {
	columns []Column
	index   map[string]int
	rows    int
}

// NewTable builds a table from columns. Column names must be unique and
// every column must have the same number of cells.
func NewTable(columns ...Column) (*Table, error) {
	t := &Table{
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}

	for i, col := range columns {
		if _, dup := t.index[col.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, col.Name)
		}
		if i == 0 {
			t.rows = col.Len()
		} else if col.Len() != t.rows {
			return nil, fmt.Errorf("%w: %q has %d rows, expected %d",
				ErrRaggedTable, col.Name, col.Len(), t.rows)
		}
		t.index[col.Name] = len(t.columns)
		t.columns = append(t.columns, col.clone())
	}

	return t, nil
}

// projection builds a table from columns already known to share a row
// count. Names may repeat; lookups by name resolve to the first occurrence.
func projection(columns []Column) *Table {
	t := &Table{
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	if len(columns) > 0 {
		t.rows = columns[0].Len()
	}
	for _, col := range columns {
		if _, seen := t.index[col.Name]; !seen {
			t.index[col.Name] = len(t.columns)
		}
		t.columns = append(t.columns, col.clone())
	}
	return t
}

// MustTable is like NewTable but panics on error. Intended for tests and
// literal tables known to be well formed.
func MustTable(columns ...Column) *Table {
	t, err := NewTable(columns...)
	if err != nil {
		panic(err)
	}
	return t
}

// NumRows returns the shared row count.
func (t *Table) NumRows() int {
	return t.rows
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.columns)
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether a column with exactly this name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) (Column, error) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return t.columns[i].clone(), nil
}

// ColumnAt returns a copy of the column at position i.
func (t *Table) ColumnAt(i int) Column {
	return t.columns[i].clone()
}

// Columns returns copies of all columns in table order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.clone()
	}
	return out
}

// column returns the stored column without copying. Callers must not modify it.
func (t *Table) column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}
