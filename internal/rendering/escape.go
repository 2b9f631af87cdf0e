package rendering

import "strings"

// EscapeTableCell makes text safe to place inside a markdown table cell.
// Pipes and backslashes are escaped, HTML metacharacters become entities so
// cell text always renders literally, and line breaks become single spaces.
func EscapeTableCell(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) + 8)

	prevBreak := false
	for _, r := range text {
		switch r {
		case '\\':
			result.WriteString(`\\`)
		case '|':
			result.WriteString(`\|`)
		case '&':
			result.WriteString("&amp;")
		case '<':
			result.WriteString("&lt;")
		case '>':
			result.WriteString("&gt;")
		case '\r', '\n':
			if !prevBreak {
				result.WriteRune(' ')
			}
			prevBreak = true
			continue
		default:
			result.WriteRune(r)
		}
		prevBreak = false
	}

	return strings.TrimSpace(result.String())
}
