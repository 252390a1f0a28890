package core

// profile.go computes descriptive statistics for each column of a table.
// Profiles are informational and never change which warnings are produced.

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ColumnProfile summarizes one column.
type ColumnProfile struct {
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	Rows     int     `json:"rows"`
	Missing  int     `json:"missing"`
	Zeros    int     `json:"zeros"`
	Negative int     `json:"negative"`
	Outliers int     `json:"outliers"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"stdDev"`
	Q1       float64 `json:"q1"`
	Q3       float64 `json:"q3"`
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
}

// HasStats reports whether the numeric fields were computed.
func (p ColumnProfile) HasStats() bool {
	return p.Kind == KindNumeric.String() && p.Rows > p.Missing
}

// Profile returns one ColumnProfile per column of t, in column order.
func Profile(t *Table) []ColumnProfile {
	out := make([]ColumnProfile, 0, t.NumCols())
	for _, col := range t.columns {
		out = append(out, profileColumn(col))
	}
	return out
}

func profileColumn(col Column) ColumnProfile {
	p := ColumnProfile{
		Name: col.Name,
		Kind: col.Kind.String(),
		Rows: col.Len(),
	}

	for _, c := range col.Cells {
		switch {
		case c.IsMissing():
			p.Missing++
		case !col.IsNumeric():
		case c.Float64 == 0:
			p.Zeros++
		case c.Float64 < 0:
			p.Negative++
		}
	}

	values := col.Values()
	if len(values) == 0 {
		return p
	}

	p.Min = floats.Min(values)
	p.Max = floats.Max(values)
	if len(values) > 1 {
		p.Mean, p.StdDev = stat.MeanStdDev(values, nil)
	} else {
		p.Mean = values[0]
	}

	if fence, ok := TukeyFence(values); ok {
		p.Q1, p.Q3 = fence.Q1, fence.Q3
		p.Lower, p.Upper = fence.Lower, fence.Upper
		for _, v := range values {
			if fence.Outside(v) {
				p.Outliers++
			}
		}
	}

	if math.IsNaN(p.StdDev) {
		p.StdDev = 0
	}
	return p
}
