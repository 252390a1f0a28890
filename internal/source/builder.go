package source

import (
	"strconv"

	"github.com/JonMunkholm/colcheck/internal/core"
)

// rawCell is a value before the column kind is known.
type rawCell struct {
	num   float64
	text  string
	isNum bool
	valid bool
}

// columnBuilder collects cells for one column and picks its kind at the end:
// numeric when every present value is a number, text otherwise.
type columnBuilder struct {
	name  string
	cells []rawCell
}

func (b *columnBuilder) appendNull() {
	b.cells = append(b.cells, rawCell{})
}

func (b *columnBuilder) appendNum(v float64) {
	b.cells = append(b.cells, rawCell{num: v, isNum: true, valid: true})
}

// appendParsed records a number that came from text, keeping the original
// spelling in case the column ends up as text.
func (b *columnBuilder) appendParsed(v float64, orig string) {
	b.cells = append(b.cells, rawCell{num: v, text: orig, isNum: true, valid: true})
}

func (b *columnBuilder) appendText(s string) {
	b.cells = append(b.cells, rawCell{text: s, valid: true})
}

func (b *columnBuilder) build() core.Column {
	numeric := true
	for _, c := range b.cells {
		if c.valid && !c.isNum {
			numeric = false
			break
		}
	}

	cells := make([]core.Cell, len(b.cells))
	for i, c := range b.cells {
		switch {
		case !c.valid:
			cells[i] = core.Null()
		case numeric:
			cells[i] = core.Num(c.num)
		case c.isNum && c.text == "":
			cells[i] = core.Text(strconv.FormatFloat(c.num, 'g', -1, 64))
		default:
			cells[i] = core.Text(c.text)
		}
	}

	kind := core.KindText
	if numeric {
		kind = core.KindNumeric
	}
	return core.Column{Name: b.name, Kind: kind, Cells: cells}
}

func buildTable(builders []*columnBuilder) (*core.Table, error) {
	cols := make([]core.Column, len(builders))
	for i, b := range builders {
		cols[i] = b.build()
	}
	return core.NewTable(cols...)
}
