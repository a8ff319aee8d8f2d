package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

// Template names. Page and fragments take a map with "users"; EditForm takes "user".
const (
	IndexPage = "index.html"
	UserList  = "user_list.html"
	EditForm  = "edit_form.html"
)

//go:embed templates/*.html
var files embed.FS

// Load parses the embedded templates into one set.
func Load() (*template.Template, error) {
	tmpl, err := template.ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// Render executes the named template and returns the produced HTML.
func Render(tmpl *template.Template, name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
