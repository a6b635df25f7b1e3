package source

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/matzehuels/vischart/pkg/data"
)

func writeParquet(t *testing.T, path string) {
	t.Helper()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "day", Type: arrow.BinaryTypes.String},
		{Name: "sales", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
		{Name: "share", Type: arrow.PrimitiveTypes.Float64},
	}, nil)

	b := array.NewRecordBuilder(memory.NewGoAllocator(), schema)
	defer b.Release()
	b.Field(0).(*array.StringBuilder).AppendValues([]string{"Mon", "Tue", "Wed"}, nil)
	b.Field(1).(*array.Int64Builder).AppendValues([]int64{12, 0, 7}, []bool{true, false, true})
	b.Field(2).(*array.Float64Builder).AppendValues([]float64{0.5, 0.25, 0.25}, nil)
	rec := b.NewRecord()
	defer rec.Release()

	var buf bytes.Buffer
	w, err := pqarrow.NewFileWriter(schema, &buf, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
	if err != nil {
		t.Fatalf("NewFileWriter() error: %v", err)
	}
	if err := w.Write(rec); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReadParquet(t *testing.T) {
	dir := t.TempDir()
	writeParquet(t, filepath.Join(dir, "sales.parquet"))

	rows, err := NewFileResolver(dir).Resolve(context.Background(), "sales")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Resolve() = %d rows, want 3", len(rows))
	}

	if rows[0]["day"] != "Mon" {
		t.Errorf("rows[0].day = %v, want Mon", rows[0]["day"])
	}
	if v, ok := data.Float(rows[0]["sales"]); !ok || v != 12 {
		t.Errorf("rows[0].sales = %v, want 12", rows[0]["sales"])
	}
	if rows[1].Has("sales") {
		t.Errorf("null cell should leave the field absent, got %v", rows[1]["sales"])
	}
	if v, _ := data.Float(rows[2]["share"]); v != 0.25 {
		t.Errorf("rows[2].share = %v, want 0.25", rows[2]["share"])
	}
}

func TestReadParquetInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.parquet")
	if err := os.WriteFile(path, []byte("not parquet"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadParquet(context.Background(), path); err == nil {
		t.Error("ReadParquet(garbage) should fail")
	}
}
