package rendering

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

var sanitizer = bluemonday.UGCPolicy()

// MarkdownToHTML converts markdown (tables included) to sanitized HTML.
func MarkdownToHTML(md string) template.HTML {
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.Safelink |
			blackfriday.NofollowLinks |
			blackfriday.NoreferrerLinks |
			blackfriday.HrefTargetBlank,
	})
	raw := blackfriday.Run([]byte(md),
		blackfriday.WithRenderer(renderer),
		blackfriday.WithExtensions(blackfriday.CommonExtensions),
	)
	return template.HTML(sanitizer.SanitizeBytes(raw)) //nolint:gosec // sanitized above
}
