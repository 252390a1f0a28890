package source

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/JonMunkholm/colcheck/internal/core"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte("A,B\n1,x\n2,y\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tbl, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if tbl.NumRows() != 2 {
		t.Errorf("NumRows() = %d, want 2", tbl.NumRows())
	}
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(context.Background(), filepath.Join(dir, "data.xlsx"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("unknown extension error = %v, want ErrUnsupportedFormat", err)
	}

	_, err = Open(context.Background(), filepath.Join(dir, "missing.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
}

func TestRead_ParquetFromStream(t *testing.T) {
	tbl := core.MustTable(core.Floats("v", 1, 2, 3))

	var buf bytes.Buffer
	if err := Write(&buf, FormatParquet, tbl); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	// bytes.Buffer has no ReadAt, so Read must buffer it.
	got, err := Read(context.Background(), FormatParquet, &buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !reflect.DeepEqual(got.Columns(), tbl.Columns()) {
		t.Errorf("Read() = %+v, want %+v", got.Columns(), tbl.Columns())
	}

	_, err = Read(context.Background(), FormatParquet, strings.NewReader(""))
	if err == nil {
		t.Error("expected error for empty parquet input")
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	tbl := core.MustTable(core.Floats("v", 1, 2))

	for _, name := range []string{"out.csv", "out.parquet"} {
		path := filepath.Join(dir, name)
		if err := Save(path, tbl); err != nil {
			t.Fatalf("Save(%s) error = %v", name, err)
		}
		got, err := Open(context.Background(), path)
		if err != nil {
			t.Fatalf("Open(%s) error = %v", name, err)
		}
		if !reflect.DeepEqual(got.Columns(), tbl.Columns()) {
			t.Errorf("%s round trip = %+v, want %+v", name, got.Columns(), tbl.Columns())
		}
	}

	err := Save(filepath.Join(dir, "out.json"), tbl)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(json) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "out.json")); !os.IsNotExist(statErr) {
		t.Error("unsupported save should not create a file")
	}
}
