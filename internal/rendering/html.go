package rendering

import (
	"embed"
	"html/template"
	"strings"
	"sync"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/types"
)

//go:embed templates/*.html
var templateFS embed.FS

// View selects one of the rendered representations of a document
type View string

const (
	// ViewPreview is the styled, print-oriented page
	ViewPreview View = "preview"
	// ViewWord is the inline-styled page meant for pasting into a word processor
	ViewWord View = "word"
)

var (
	templatesOnce sync.Once
	templates     map[View]*template.Template
	templatesErr  error
)

// loadTemplates parses the embedded view templates once
func loadTemplates() (map[View]*template.Template, error) {
	templatesOnce.Do(func() {
		files := map[View]string{
			ViewPreview: "templates/preview.html",
			ViewWord:    "templates/word.html",
		}
		parsed := make(map[View]*template.Template, len(files))
		for view, name := range files {
			tmpl, err := template.ParseFS(templateFS, name)
			if err != nil {
				templatesErr = &TemplateError{
					Message: "failed to parse template " + name,
					Cause:   err,
				}
				return
			}
			parsed[view] = tmpl
		}
		templates = parsed
	})
	return templates, templatesErr
}

// Render renders the document in the requested view
func Render(view View, doc types.RFP) (string, error) {
	tmpls, err := loadTemplates()
	if err != nil {
		return "", err
	}

	tmpl, ok := tmpls[view]
	if !ok {
		return "", &RenderError{Message: "unknown view " + string(view)}
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, BuildDocument(doc)); err != nil {
		return "", &TemplateError{
			Message: "failed to execute " + string(view) + " template",
			Cause:   err,
		}
	}

	return result.String(), nil
}

// RenderPreview renders the print preview page
func RenderPreview(doc types.RFP) (string, error) {
	return Render(ViewPreview, doc)
}

// RenderWordCopy renders the word-processor copy page. It carries only inline
// styles so the content survives a select-all, copy and paste.
func RenderWordCopy(doc types.RFP) (string, error) {
	return Render(ViewWord, doc)
}

// ParseView converts a view name into a View
func ParseView(name string) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(name))) {
	case ViewPreview:
		return ViewPreview, nil
	case ViewWord:
		return ViewWord, nil
	}
	return "", &RenderError{Message: "unknown view " + name}
}
