package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/JonMunkholm/colcheck/internal/core"
)

// Read decodes r in the given format. Parquet needs random access, so a
// reader that is not an io.ReaderAt/io.Seeker is buffered in memory first.
func Read(ctx context.Context, format Format, r io.Reader) (*core.Table, error) {
	switch format {
	case FormatCSV:
		return ReadCSV(r, CSVOptions{})
	case FormatJSON:
		return ReadJSON(r)
	case FormatParquet:
		if ras, ok := r.(interface {
			io.ReaderAt
			io.Seeker
		}); ok {
			return ReadParquet(ctx, ras)
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read parquet: %w", err)
		}
		if len(data) == 0 {
			return nil, ErrEmptyFile
		}
		return ReadParquet(ctx, bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Open reads the file at path, choosing the format from its extension.
func Open(ctx context.Context, path string) (*core.Table, error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	tbl, err := Read(ctx, format, f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return tbl, nil
}

// Write encodes t to w in the given format.
func Write(w io.Writer, format Format, t *core.Table) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatParquet:
		return WriteParquet(w, t)
	default:
		return fmt.Errorf("%w: cannot write %s", ErrUnsupportedFormat, format)
	}
}

// Save writes t to path, choosing the format from its extension.
func Save(path string, t *core.Table) error {
	format := DetectFormat(path)
	if format != FormatCSV && format != FormatParquet {
		return fmt.Errorf("%w: cannot write %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := Write(f, format, t); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
