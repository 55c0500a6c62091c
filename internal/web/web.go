// Package web holds the embedded HTML templates of the upload and results pages.
package web

import (
	"embed"
	"html/template"
	"strings"

	"lexbrief/internal/export"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names.
const (
	PageLanding = "landing.html"
	PageUpload  = "upload.html"
	PageResults = "results.html"
	PageError   = "error.html"
)

var funcs = template.FuncMap{
	"join":       strings.Join,
	"timestamp":  export.FormatTimestampNow,
	"percent":    export.Percent,
	"disclaimer": func() string { return export.Disclaimer },
}

// Templates parses every embedded page. It panics on a malformed template,
// which can only happen at build time.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}
