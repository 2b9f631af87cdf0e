package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/fastlabor/internal/records"
)

// Section titles and empty-state notices of the My Jobs page.
const (
	PostingsTitle   = "Post Job"
	SearchesTitle   = "Find Job"
	NoPostingsText  = "You have not posted any jobs yet."
	NoSearchesText  = "You have not searched for any jobs yet."
	fieldHeader     = "| Field | Detail |\n|-------|--------|\n"
	postingHeadline = "Job ID"
	searchHeadline  = "Find ID"
)

// field is one label/value line of a record table.
type field struct {
	label string
	value string
}

func writeTable(sb *strings.Builder, fields []field) {
	sb.WriteString(fieldHeader)
	for _, f := range fields {
		fmt.Fprintf(sb, "| %s | %s |\n", f.label, EscapeTableCell(f.value))
	}
}

// PostingTable renders the key/value table of one posting.
func PostingTable(p records.PostingDisplay) string {
	var sb strings.Builder
	writeTable(&sb, []field{
		{"Job Type", p.JobType},
		{"Detail", p.Detail},
		{"Date", p.Date},
		{"Time", p.Time()},
		{"Location", p.Address},
		{"Salary", p.Salary},
	})
	return sb.String()
}

// SearchTable renders the key/value table of one search.
func SearchTable(s records.SearchDisplay) string {
	var sb strings.Builder
	writeTable(&sb, []field{
		{"Job Type", s.JobType},
		{"Skill", s.Skills},
		{"Date", s.Date},
		{"Time", s.Time()},
		{"Location", s.Address},
		{"Start Salary", s.MinSalary},
		{"Range Salary", s.MaxSalary},
	})
	return sb.String()
}

// PostingMarkdown renders a posting card: heading plus table.
func PostingMarkdown(p records.PostingDisplay) string {
	return fmt.Sprintf("### %s: %s\n\n%s", postingHeadline, EscapeTableCell(p.ID), PostingTable(p))
}

// SearchMarkdown renders a search card: heading plus table.
func SearchMarkdown(s records.SearchDisplay) string {
	return fmt.Sprintf("### %s: %s\n\n%s", searchHeadline, EscapeTableCell(s.ID), SearchTable(s))
}

// ViewMarkdown renders the whole page as one markdown document.
func ViewMarkdown(view *records.View) string {
	var sb strings.Builder

	sb.WriteString("# My Jobs\n\n")

	fmt.Fprintf(&sb, "## %s\n\n", PostingsTitle)
	if !view.HasPostings() {
		sb.WriteString(NoPostingsText + "\n\n")
	} else {
		for _, p := range view.Postings {
			sb.WriteString(PostingMarkdown(p))
			sb.WriteString("\n")
		}
	}

	fmt.Fprintf(&sb, "## %s\n\n", SearchesTitle)
	if !view.HasSearches() {
		sb.WriteString(NoSearchesText + "\n")
	} else {
		for i, s := range view.Searches {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(SearchMarkdown(s))
		}
	}

	return sb.String()
}
