package render

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// Template names shipped with the package.
const (
	ReviewTemplate  = "review.tpl"
	SummaryTemplate = "summary.tpl"
)

// TemplatesFS exposes the embedded templates rooted at their directory.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
