package core

// select.go implements column projection with the quality checks that run
// on every successful selection.

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrMissingColumns matches any *MissingColumnsError via errors.Is.
var ErrMissingColumns = errors.New("missing columns")

// MissingColumnsError is returned by SelectColumns when requested columns
// are not in the table. Columns keeps the requested order.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "The following columns are not in the DataFrame: " + formatNameList(e.Columns)
}

// Is lets errors.Is(err, ErrMissingColumns) match.
func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}

// formatNameList renders names the way Python prints a list of strings:
// ['A', 'B'], switching to double quotes for a name holding only single
// quotes.
func formatNameList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = pyQuote(n)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func pyQuote(s string) string {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var b strings.Builder
	b.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case unicode.IsPrint(r):
			b.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteRune(quote)
	return b.String()
}

// MissingColumns returns the requested names that are not in t, in the order
// they were requested.
func MissingColumns(t *Table, names []string) []string {
	var missing []string
	for _, name := range names {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Project returns a new table holding copies of the named columns in the
// given order. A name requested twice appears twice. It fails with
// *MissingColumnsError before copying anything.
func Project(t *Table, names []string) (*Table, error) {
	if missing := MissingColumns(t, names); len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	cols := make([]Column, 0, len(names))
	for _, name := range names {
		col, _ := t.column(name)
		cols = append(cols, col)
	}

	return projection(cols), nil
}

// SelectColumns projects t to the named columns, runs CheckDataQuality on the
// projection and hands the warnings to rep. A nil rep writes plain text to
// stdout.
//
// The projection is returned whenever validation passes; warnings never
// block it. A reporter failure is returned alongside the projection.
func SelectColumns(t *Table, names []string, rep Reporter) (*Table, error) {
	return SelectColumnsContext(context.Background(), t, names, rep)
}

// SelectColumnsContext is SelectColumns with a context passed to the reporter.
func SelectColumnsContext(ctx context.Context, t *Table, names []string, rep Reporter) (*Table, error) {
	proj, err := Project(t, names)
	if err != nil {
		return nil, err
	}

	if rep == nil {
		rep = DefaultReporter()
	}
	if err := rep.Report(ctx, CheckDataQuality(proj)); err != nil {
		return proj, fmt.Errorf("report warnings: %w", err)
	}

	return proj, nil
}
