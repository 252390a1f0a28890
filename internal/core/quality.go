package core

// quality.go implements the per-column data-quality checks.
//
// Each column gets four independent checks, always in this order:
//  1. missing values (null cells or NaN)
//  2. exact zeros
//  3. negative values
//  4. Tukey IQR outliers
//
// Text columns only get the missing-value check; zero, negative and outlier
// checks need numbers.

import "fmt"

// CheckDataQuality runs every check on every column of t, in column order,
// and returns the findings. It never modifies t.
func CheckDataQuality(t *Table) []Warning {
	var warnings []Warning

	for _, col := range t.columns {
		if hasMissing(col) {
			warnings = append(warnings, Warning{Column: col.Name, Kind: WarnMissing})
		}
		if hasZero(col) {
			warnings = append(warnings, Warning{Column: col.Name, Kind: WarnZeros})
		}
		if hasNegative(col) {
			warnings = append(warnings, Warning{Column: col.Name, Kind: WarnNegative})
		}
		if columnHasOutliers(col) {
			warnings = append(warnings, Warning{Column: col.Name, Kind: WarnOutliers})
		}
	}

	return warnings
}

// CheckOutliers reports whether the named column has any value outside the
// Tukey fence. A text column or one without values never has outliers.
func CheckOutliers(t *Table, name string) (bool, error) {
	col, ok := t.column(name)
	if !ok {
		return false, fmt.Errorf("check outliers: %w: %q", ErrColumnNotFound, name)
	}
	return columnHasOutliers(col), nil
}

func hasMissing(col Column) bool {
	for _, c := range col.Cells {
		if c.IsMissing() {
			return true
		}
	}
	return false
}

func hasZero(col Column) bool {
	if !col.IsNumeric() {
		return false
	}
	for _, c := range col.Cells {
		if !c.IsMissing() && c.Float64 == 0 {
			return true
		}
	}
	return false
}

func hasNegative(col Column) bool {
	if !col.IsNumeric() {
		return false
	}
	for _, c := range col.Cells {
		if !c.IsMissing() && c.Float64 < 0 {
			return true
		}
	}
	return false
}

func columnHasOutliers(col Column) bool {
	values := col.Values()
	fence, ok := TukeyFence(values)
	if !ok {
		return false
	}
	for _, v := range values {
		if fence.Outside(v) {
			return true
		}
	}
	return false
}
