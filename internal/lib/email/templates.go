package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

// Template names an HTML file under templates/.
type Template string

const (
	TemplateHeroCreated Template = "hero_created"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// render executes the named template with data.
func render(name Template, data any) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, string(name)+".html", data); err != nil {
		return "", fmt.Errorf("executing email template %s: %w", name, err)
	}
	return body.String(), nil
}
