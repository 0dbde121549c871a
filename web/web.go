// Package web holds the server-rendered page templates, embedded into the binary.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates. Panics on malformed templates,
// which is a build defect rather than a runtime condition.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}
