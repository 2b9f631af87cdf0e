// Package records turns raw spreadsheet values into the per-user display
// models shown on the My Jobs page.
package records

import "strings"

// EmailColumn is the normalized header that identifies a record's owner.
const EmailColumn = "email"

// Table holds the values of one worksheet: a header row plus data rows.
// Rows are expected to be as wide as Header; see sheets.TableFromValues.
type Table struct {
	Header []string
	Rows   [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// NormalizeHeader trims, lower-cases and replaces spaces with underscores.
// Applying it twice yields the same result as applying it once.
func NormalizeHeader(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// NormalizeHeaders returns a copy of t with every column renamed through
// NormalizeHeader. Row count and order are unchanged.
func NormalizeHeaders(t *Table) *Table {
	if t == nil {
		return &Table{}
	}

	header := make([]string, len(t.Header))
	for i, name := range t.Header {
		header[i] = NormalizeHeader(name)
	}

	rows := make([][]string, len(t.Rows))
	copy(rows, t.Rows)

	return &Table{Header: header, Rows: rows}
}

// columnIndex returns the position of the first column named name, or -1.
func (t *Table) columnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Row returns the i-th data row keyed by header name. When a header appears
// more than once the first occurrence wins.
func (t *Table) Row(i int) Row {
	row := make(Row, len(t.Header))
	values := t.Rows[i]
	for col := len(t.Header) - 1; col >= 0; col-- {
		if col < len(values) {
			row[t.Header[col]] = values[col]
		} else {
			row[t.Header[col]] = ""
		}
	}
	return row
}

// FilterByOwner returns the rows whose email column equals email exactly,
// in their original order. The header is kept. A table without an email
// column, or an empty email, yields no rows.
func FilterByOwner(t *Table, email string) *Table {
	if t == nil {
		return &Table{}
	}

	out := &Table{Header: t.Header, Rows: [][]string{}}
	if email == "" {
		return out
	}

	col := t.columnIndex(EmailColumn)
	if col < 0 {
		return out
	}

	for _, values := range t.Rows {
		if col < len(values) && values[col] == email {
			out.Rows = append(out.Rows, values)
		}
	}
	return out
}

// Row is a single record keyed by normalized header.
type Row map[string]string

// Get returns the raw cell value, or "" when the column does not exist.
func (r Row) Get(key string) string {
	return r[key]
}

// Present returns the cell value as is, or nil when the column is missing
// or the cell is empty. Whitespace counts as a value.
func (r Row) Present(key string) *string {
	v, ok := r[key]
	if !ok || v == "" {
		return nil
	}
	return &v
}

// Optional returns the trimmed cell value, or nil when the column is
// missing or the cell is blank.
func (r Row) Optional(key string) *string {
	v, ok := r[key]
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
