package sheets

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/fastlabor/internal/records"
)

// CSVSource reads worksheets exported as <dir>/<sheet>.csv.
type CSVSource struct {
	Dir string
}

// NewCSVSource creates a CSVSource rooted at dir.
func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{Dir: dir}
}

// Values parses <dir>/<sheet>.csv. Rows may have differing widths.
func (c *CSVSource) Values(ctx context.Context, sheet string) (*records.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(c.Dir, sheet+".csv")
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &SheetNotFoundError{Sheet: sheet, Cause: err}
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	values, err := readCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return TableFromValues(values), nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader.ReadAll()
}

// StaticSource serves fixed worksheet values from memory.
type StaticSource map[string][][]string

// Values returns a copy of the stored sheet.
func (s StaticSource) Values(ctx context.Context, sheet string) (*records.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	values, ok := s[sheet]
	if !ok {
		return nil, &SheetNotFoundError{Sheet: sheet}
	}
	return TableFromValues(values), nil
}
