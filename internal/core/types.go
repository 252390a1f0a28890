package core

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
)

// DBTX is the query method table sources need.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
}

// ColumnKind is the value type held by a column.
type ColumnKind int

const (
	KindNumeric ColumnKind = iota
	KindText
)

// String returns the lowercase name of the kind.
func (k ColumnKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// Cell is a single nullable table value. Valid=false marks a missing value.
// Numeric columns use Float64, text columns use String.
type Cell struct {
	Float64 float64
	String  string
	Valid   bool
}

// Num returns a valid numeric cell.
func Num(v float64) Cell {
	return Cell{Float64: v, Valid: true}
}

// Text returns a valid text cell.
func Text(s string) Cell {
	return Cell{String: s, Valid: true}
}

// Null returns a missing cell.
func Null() Cell {
	return Cell{}
}

// IsMissing reports whether the cell has no usable value.
// NaN counts as missing, matching how it is reported.
func (c Cell) IsMissing() bool {
	return !c.Valid || math.IsNaN(c.Float64)
}

// Column is a named, homogeneous sequence of cells.
type Column struct {
	Name  string
	Kind  ColumnKind
	Cells []Cell
}

// NumericColumn builds a numeric column. A nil pointer is a missing value.
func NumericColumn(name string, values ...*float64) Column {
	cells := make([]Cell, len(values))
	for i, v := range values {
		if v != nil {
			cells[i] = Num(*v)
		}
	}
	return Column{Name: name, Kind: KindNumeric, Cells: cells}
}

// Floats builds a numeric column with no missing values.
func Floats(name string, values ...float64) Column {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Num(v)
	}
	return Column{Name: name, Kind: KindNumeric, Cells: cells}
}

// Strings builds a text column. Empty strings are stored as missing.
func Strings(name string, values ...string) Column {
	cells := make([]Cell, len(values))
	for i, v := range values {
		if v != "" {
			cells[i] = Text(v)
		}
	}
	return Column{Name: name, Kind: KindText, Cells: cells}
}

// Len returns the number of cells in the column.
func (c Column) Len() int {
	return len(c.Cells)
}

// IsNumeric reports whether the column holds numbers.
func (c Column) IsNumeric() bool {
	return c.Kind == KindNumeric
}

// Values returns the non-missing numeric values in row order.
// Text columns return nil.
func (c Column) Values() []float64 {
	if !c.IsNumeric() {
		return nil
	}
	out := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if !cell.IsMissing() {
			out = append(out, cell.Float64)
		}
	}
	return out
}

// clone returns a deep copy so callers can't alias the source cells.
func (c Column) clone() Column {
	cells := make([]Cell, len(c.Cells))
	copy(cells, c.Cells)
	return Column{Name: c.Name, Kind: c.Kind, Cells: cells}
}

// WarningKind identifies which check produced a warning.
type WarningKind int

const (
	WarnMissing WarningKind = iota
	WarnZeros
	WarnNegative
	WarnOutliers
)

// String returns the machine-readable name of the kind.
func (k WarningKind) String() string {
	switch k {
	case WarnMissing:
		return "missing"
	case WarnZeros:
		return "zeros"
	case WarnNegative:
		return "negative"
	case WarnOutliers:
		return "outliers"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// Warning is a single non-fatal data-quality finding for a column.
type Warning struct {
	Column string
	Kind   WarningKind
}

// Message renders the warning as a single human-readable line.
func (w Warning) Message() string {
	switch w.Kind {
	case WarnMissing:
		return fmt.Sprintf("Warning: Column '%s' contains NaN or missing values.", w.Column)
	case WarnZeros:
		return fmt.Sprintf("Warning: Column '%s' contains zeros.", w.Column)
	case WarnNegative:
		return fmt.Sprintf("Warning: Column '%s' contains negative values.", w.Column)
	case WarnOutliers:
		return fmt.Sprintf("Warning: Column '%s' may contain potential outliers.", w.Column)
	default:
		return fmt.Sprintf("Warning: Column '%s' has an unknown issue.", w.Column)
	}
}

// String implements fmt.Stringer.
func (w Warning) String() string {
	return w.Message()
}
