// Package sheets reads worksheet values from the shared FastLabor spreadsheet.
package sheets

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/fastlabor/internal/records"
)

// Default worksheet names of the FastLabor spreadsheet.
const (
	DefaultPostSheet = "post_job"
	DefaultFindSheet = "find_job"
)

// Source returns the full contents of a worksheet by name.
type Source interface {
	Values(ctx context.Context, sheet string) (*records.Table, error)
}

// SheetNotFoundError indicates the spreadsheet has no worksheet with the given name
type SheetNotFoundError struct {
	Sheet string
	Cause error
}

func (e *SheetNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("sheet not found: %s: %v", e.Sheet, e.Cause)
	}
	return fmt.Sprintf("sheet not found: %s", e.Sheet)
}

func (e *SheetNotFoundError) Unwrap() error {
	return e.Cause
}

// TableFromValues splits raw values into header and data rows. Data rows are
// padded with empty cells up to the header width; cells past the header are
// dropped. No values yields an empty table.
func TableFromValues(values [][]string) *records.Table {
	if len(values) == 0 {
		return &records.Table{Header: []string{}, Rows: [][]string{}}
	}

	header := append([]string(nil), values[0]...)
	rows := make([][]string, 0, len(values)-1)
	for _, raw := range values[1:] {
		row := make([]string, len(header))
		copy(row, raw)
		rows = append(rows, row)
	}

	return &records.Table{Header: header, Rows: rows}
}

// FetchPair reads two worksheets concurrently. If either read fails the
// other is cancelled and the first error is returned.
func FetchPair(ctx context.Context, src Source, first, second string) (*records.Table, *records.Table, error) {
	g, gCtx := errgroup.WithContext(ctx)

	var firstTable, secondTable *records.Table

	g.Go(func() error {
		t, err := src.Values(gCtx, first)
		if err != nil {
			return fmt.Errorf("failed to read sheet %s: %w", first, err)
		}
		firstTable = t
		return nil
	})

	g.Go(func() error {
		t, err := src.Values(gCtx, second)
		if err != nil {
			return fmt.Errorf("failed to read sheet %s: %w", second, err)
		}
		secondTable = t
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return firstTable, secondTable, nil
}
