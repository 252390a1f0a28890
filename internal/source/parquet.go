package source

import (
	"context"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/JonMunkholm/colcheck/internal/core"
)

// ReadParquet reads a whole Parquet file into a table.
func ReadParquet(ctx context.Context, r parquet.ReaderAtSeeker) (*core.Table, error) {
	mem := memory.NewGoAllocator()

	pf, err := file.NewParquetReader(r, file.WithReadProps(parquet.NewReaderProperties(mem)))
	if err != nil {
		return nil, fmt.Errorf("invalid parquet: %w", err)
	}
	defer pf.Close()

	arrowReader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("invalid parquet: %w", err)
	}

	tbl, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("invalid parquet: read table: %w", err)
	}
	defer tbl.Release()

	return FromArrow(tbl)
}

// WriteParquet writes t as a snappy-compressed Parquet file.
func WriteParquet(w io.Writer, t *core.Table) error {
	tbl := ToArrow(t, memory.NewGoAllocator())
	defer tbl.Release()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	// The writer closes sinks that implement io.Closer; callers own w.
	writer, err := pqarrow.NewFileWriter(tbl.Schema(), struct{ io.Writer }{w}, props, arrowProps)
	if err != nil {
		return fmt.Errorf("create parquet writer: %w", err)
	}

	chunkSize := tbl.NumRows()
	if chunkSize <= 0 {
		chunkSize = 1
	}
	if err := writer.WriteTable(tbl, chunkSize); err != nil {
		writer.Close()
		return fmt.Errorf("write parquet table: %w", err)
	}

	return writer.Close()
}
