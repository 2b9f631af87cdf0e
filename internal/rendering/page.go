package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/jonathan/fastlabor/internal/records"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

const pageTemplate = "my_jobs.html.tmpl"

// Card is one rendered record on the page.
type Card struct {
	Index int
	ID    string
	Body  template.HTML
}

// PageData is the input of the My Jobs page template.
type PageData struct {
	Email          string
	Postings       []Card
	Searches       []Card
	PostingsTitle  string
	SearchesTitle  string
	NoPostingsText string
	NoSearchesText string
	HomeURL        string
	MatchURL       func(index int) string
}

// Page renders the My Jobs HTML page.
type Page struct {
	tmpl *template.Template
}

// NewPage parses the embedded page template.
func NewPage() (*Page, error) {
	tmpl, err := template.New(pageTemplate).Funcs(template.FuncMap{
		"matchURL": func(data PageData, index int) string {
			if data.MatchURL == nil {
				return DefaultMatchPath(index)
			}
			return data.MatchURL(index)
		},
	}).ParseFS(templateFS, "templates/"+pageTemplate)
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse page template", Cause: err}
	}
	return &Page{tmpl: tmpl}, nil
}

// DefaultMatchPath is the form action that selects posting index.
func DefaultMatchPath(index int) string {
	return fmt.Sprintf("/my-jobs/postings/%d/match", index)
}

// NewPageData converts a view into template input.
func NewPageData(view *records.View, homeURL string) PageData {
	data := PageData{
		Email:          view.Email,
		Postings:       make([]Card, 0, len(view.Postings)),
		Searches:       make([]Card, 0, len(view.Searches)),
		PostingsTitle:  PostingsTitle,
		SearchesTitle:  SearchesTitle,
		NoPostingsText: NoPostingsText,
		NoSearchesText: NoSearchesText,
		HomeURL:        homeURL,
	}
	for _, p := range view.Postings {
		data.Postings = append(data.Postings, Card{Index: p.Index, ID: p.ID, Body: MarkdownToHTML(PostingMarkdown(p))})
	}
	for _, s := range view.Searches {
		data.Searches = append(data.Searches, Card{Index: s.Index, ID: s.ID, Body: MarkdownToHTML(SearchMarkdown(s))})
	}
	return data
}

// Render executes the template into w. Output is buffered so a failure
// never leaves a half-written page.
func (p *Page) Render(w io.Writer, data PageData) error {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, pageTemplate, data); err != nil {
		return &TemplateError{Message: "failed to execute page template", Cause: err}
	}
	if _, err := buf.WriteTo(w); err != nil {
		return &RenderError{Message: "failed to write page", Cause: err}
	}
	return nil
}
