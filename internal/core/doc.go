// Package core holds the in-memory table model and the column checks.
//
// # Tables
//
// A [Table] is an ordered set of equally long, uniquely named [Column]s.
// Each column is numeric or text, and every [Cell] may be missing. NaN in a
// numeric column counts as missing.
//
// # Selecting and checking
//
// [SelectColumns] projects a table onto the requested names, in request
// order, and reports quality warnings for the projection:
//
//	proj, err := core.SelectColumns(t, []string{"A", "B"}, nil)
//	var mce *core.MissingColumnsError
//	if errors.As(err, &mce) {
//	    // mce.Columns lists the absent names; nothing was reported
//	}
//
// The checks run per column in a fixed order: missing values, zeros,
// negative values, then Tukey outliers (values outside Q1-1.5*IQR and
// Q3+1.5*IQR, quartiles by linear interpolation). Text columns only get the
// missing-value check.
//
// # Reporting
//
// Checks return [Warning] values; a [Reporter] decides where they go.
// [TextReporter] prints the classic one-line messages, [LogReporter] emits
// slog records, [Collector] keeps them for callers such as the HTTP API.
//
// # Errors
//
// [MapError] turns any error from this module into a [UserMessage] with a
// support code. See error_messages.go for the code table.
package core
