package observability

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/jonathan/fastlabor/internal/records"
	"github.com/jonathan/fastlabor/internal/rendering"
)

// Printer writes a My Jobs view to a terminal as boxed tables.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) printTable(title string, rows [][]string) error {
	data := pterm.TableData{{"Field", "Detail"}}
	data = append(data, rows...)

	table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render table %s: %w", title, err)
	}

	_, err = fmt.Fprintf(p.out, "%s\n%s\n\n", title, table)
	return err
}

// PrintView prints every posting and search of view, or the empty-state
// notice of each section.
func (p *Printer) PrintView(view *records.View) error {
	if _, err := fmt.Fprintf(p.out, "== %s ==\n", rendering.PostingsTitle); err != nil {
		return err
	}
	if !view.HasPostings() {
		if _, err := fmt.Fprintln(p.out, rendering.NoPostingsText); err != nil {
			return err
		}
	}
	for _, d := range view.Postings {
		err := p.printTable("Job ID: "+d.ID, [][]string{
			{"Job Type", d.JobType},
			{"Detail", d.Detail},
			{"Date", d.Date},
			{"Time", d.Time()},
			{"Location", d.Address},
			{"Salary", d.Salary},
		})
		if err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(p.out, "== %s ==\n", rendering.SearchesTitle); err != nil {
		return err
	}
	if !view.HasSearches() {
		if _, err := fmt.Fprintln(p.out, rendering.NoSearchesText); err != nil {
			return err
		}
	}
	for _, d := range view.Searches {
		err := p.printTable("Find ID: "+d.ID, [][]string{
			{"Job Type", d.JobType},
			{"Skill", d.Skills},
			{"Date", d.Date},
			{"Time", d.Time()},
			{"Location", d.Address},
			{"Start Salary", d.MinSalary},
			{"Range Salary", d.MaxSalary},
		})
		if err != nil {
			return err
		}
	}
	return nil
}
