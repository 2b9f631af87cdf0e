package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/jonathan/fastlabor/internal/records"
)

// GoogleSource reads worksheets through the Google Sheets v4 API.
type GoogleSource struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// Credentials selects how the service account authenticates. JSON takes
// precedence over File; with neither, Application Default Credentials apply.
type Credentials struct {
	JSON []byte
	File string
}

// ClientOptions converts the credentials into API client options scoped to
// read-only spreadsheet access.
func (c Credentials) ClientOptions() []option.ClientOption {
	opts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope)}
	switch {
	case len(c.JSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(c.JSON))
	case c.File != "":
		opts = append(opts, option.WithCredentialsFile(c.File))
	}
	return opts
}

// NewGoogleSource creates a Sheets API client for spreadsheetID.
func NewGoogleSource(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*GoogleSource, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}

	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &GoogleSource{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// Values fetches every populated cell of sheet as formatted text.
func (g *GoogleSource) Values(ctx context.Context, sheet string) (*records.Table, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, quoteSheetName(sheet)).
		MajorDimension("ROWS").
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		// A missing worksheet surfaces as 400 "Unable to parse range".
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusBadRequest {
			return nil, &SheetNotFoundError{Sheet: sheet, Cause: err}
		}
		return nil, fmt.Errorf("failed to get values of sheet %s: %w", sheet, err)
	}

	return TableFromValues(stringifyValues(resp.Values)), nil
}

// quoteSheetName wraps a sheet name as an A1 range covering the whole sheet.
func quoteSheetName(sheet string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}

func stringifyValues(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			switch cell := v.(type) {
			case string:
				cells[j] = cell
			case nil:
				cells[j] = ""
			default:
				cells[j] = fmt.Sprint(cell)
			}
		}
		out[i] = cells
	}
	return out
}
