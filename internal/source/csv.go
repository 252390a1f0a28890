package source

// csv.go reads and writes tables as CSV.
//
// Input goes through BOM handling and invalid UTF-8 replacement before the
// CSV parser sees it. Cells matching a null token are missing values; a
// column is numeric when every present cell parses as a number.

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/JonMunkholm/colcheck/internal/core"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// nullTokens are the cell spellings read as missing values.
var nullTokens = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true,
	"-1.#QNAN": true, "-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true,
	"<NA>": true, "N/A": true, "NA": true, "NULL": true, "NaN": true,
	"None": true, "n/a": true, "nan": true, "null": true,
}

// CSVOptions controls CSV parsing.
type CSVOptions struct {
	// Comma is the field delimiter (default ',').
	Comma rune
}

// NewCleanReader wraps r so a leading byte order mark is consumed and
// invalid UTF-8 is replaced with U+FFFD.
func NewCleanReader(r io.Reader) io.Reader {
	return transform.NewReader(r, transform.Chain(
		unicode.BOMOverride(transform.Nop),
		runes.ReplaceIllFormed(),
	))
}

// ReadCSV reads a CSV stream with a header row into a table.
func ReadCSV(r io.Reader, opts CSVOptions) (*core.Table, error) {
	cr := csv.NewReader(NewCleanReader(r))
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}

	builders := make([]*columnBuilder, len(header))
	for i, name := range header {
		builders[i] = &columnBuilder{name: strings.TrimSpace(name)}
	}

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid csv: %w", err)
		}
		for i, b := range builders {
			appendCSVCell(b, record[i])
		}
	}

	return buildTable(builders)
}

func appendCSVCell(b *columnBuilder, raw string) {
	s := cleanCell(raw)
	if nullTokens[s] {
		b.appendNull()
		return
	}
	if v, ok := ParseNumber(s); ok {
		b.appendParsed(v, s)
		return
	}
	b.appendText(s)
}

// cleanCell trims whitespace and unwraps spreadsheet text formulas such as
// ="00123", which exports use to keep leading zeros.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		return s[2 : len(s)-1]
	}
	return s
}

// ParseNumber parses a numeric cell. It accepts currency symbols, thousands
// separators and accounting negatives such as "(1,234.50)".
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// WriteCSV writes t with a header row. Missing values are empty cells.
func WriteCSV(w io.Writer, t *core.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.ColumnNames()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	cols := t.Columns()
	row := make([]string, len(cols))
	for r := 0; r < t.NumRows(); r++ {
		for i, col := range cols {
			row[i] = formatCell(col, col.Cells[r])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatCell(col core.Column, c core.Cell) string {
	if c.IsMissing() {
		return ""
	}
	if col.IsNumeric() {
		return strconv.FormatFloat(c.Float64, 'g', -1, 64)
	}
	return c.String
}
