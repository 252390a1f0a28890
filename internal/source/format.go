// Package source loads tables from files, byte streams and PostgreSQL, and
// writes projections back out.
package source

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for files that are not CSV, JSON or Parquet.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrEmptyFile is returned when a file has no header or no records.
	ErrEmptyFile = errors.New("empty file")
)

// Format identifies a table encoding.
type Format int

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatJSON
	FormatParquet
)

// String returns the short lowercase name of the format.
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatParquet:
		return "parquet"
	default:
		return "unknown"
	}
}

// DetectFormat determines the format from a file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV
	case ".json":
		return FormatJSON
	case ".parquet", ".pq":
		return FormatParquet
	default:
		return FormatUnknown
	}
}

// ParseFormat accepts a format name ("csv") or a media type ("text/csv").
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if mt, _, err := mime.ParseMediaType(s); err == nil {
		s = mt
	}

	switch s {
	case "csv", "text/csv", "application/csv":
		return FormatCSV, nil
	case "json", "application/json":
		return FormatJSON, nil
	case "parquet", "application/vnd.apache.parquet", "application/x-parquet":
		return FormatParquet, nil
	default:
		return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}
