package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/vischart/pkg/data"
	"github.com/matzehuels/vischart/pkg/errors"
)

// FileExtensions are the file types [FileResolver] reads, in the order they
// are tried for a name without an extension.
var FileExtensions = []string{".json", ".csv", ".parquet"}

// FileResolver reads datasets from files below Dir. The name "sales" finds
// sales.json, sales.csv or sales.parquet; "sales.csv" reads that file only.
type FileResolver struct {
	Dir string
}

// NewFileResolver creates a resolver rooted at dir.
func NewFileResolver(dir string) *FileResolver {
	return &FileResolver{Dir: dir}
}

// Resolve reads the file for name.
func (r *FileResolver) Resolve(ctx context.Context, name string) ([]data.Row, error) {
	if err := errors.ValidateDataName(name); err != nil {
		return nil, err
	}
	path, ok := r.find(name)
	if !ok {
		return nil, notFound(name)
	}
	return ReadFile(ctx, path)
}

func (r *FileResolver) find(name string) (string, bool) {
	base := filepath.Join(r.Dir, filepath.FromSlash(name))
	candidates := []string{base}
	if filepath.Ext(name) == "" {
		candidates = candidates[:0]
		for _, ext := range FileExtensions {
			candidates = append(candidates, base+ext)
		}
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// ReadFile reads rows from a JSON, CSV or Parquet file chosen by extension.
func ReadFile(ctx context.Context, path string) ([]data.Row, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".parquet" {
		return ReadParquet(ctx, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ext {
	case ".json":
		rows, err := DecodeJSON(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "read %s", filepath.Base(path))
		}
		return rows, nil
	case ".csv":
		rows, err := DecodeCSV(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "read %s", filepath.Base(path))
		}
		return rows, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported data file type: %s", ext)
}

var _ Resolver = (*FileResolver)(nil)

// String describes the resolver for logs.
func (r *FileResolver) String() string {
	return fmt.Sprintf("file(%s)", r.Dir)
}
