package api

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Template names
const (
	IndexTemplate  = "index.html"
	RecipeTemplate = "recipe.html"
)

// LoadTemplates parses the embedded page templates
func LoadTemplates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.html")
}
