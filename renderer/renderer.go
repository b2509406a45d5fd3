// Package renderer renders dkbl reports as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/dkbl"
	"github.com/etnz/dkbl/date"
	"github.com/etnz/dkbl/suggest"
)

//go:embed *.md
var templates embed.FS

var funcs = template.FuncMap{
	"money":  dkbl.FormatMoney,
	"signed": dkbl.SignedMoney,
	"span":   span,
}

// RenderSummary renders the Summary struct to a markdown string.
func RenderSummary(s *dkbl.Summary) string {
	partials := map[string]string{
		"summary_periods": "summary_periods.md",
		"summary_labels":  "summary_labels.md",
	}
	return renderTemplate("summary", "summary.md", partials, s)
}

// RenderSuggestions renders label suggestions as a markdown table.
func RenderSuggestions(s []suggest.Suggestion) string {
	return renderTemplate("suggestions", "suggestions.md", nil, s)
}

// span describes a range for a title: " from X to Y", " since X", " until Y" or "".
func span(r date.Range) string {
	switch {
	case r.From.IsZero() && r.To.IsZero():
		return ""
	case r.To.IsZero():
		return " since " + r.From.String()
	case r.From.IsZero():
		return " until " + r.To.String()
	}
	return fmt.Sprintf(" from %s to %s", r.From, r.To)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
