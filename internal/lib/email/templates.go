package email

import (
	"embed"
	"html/template"
	"io"

	"github.com/pkg/errors"
)

// Template names an HTML file under templates/.
type Template string

const (
	TemplateWelcome Template = "welcome"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Render executes templateName with data into w.
func Render(w io.Writer, templateName Template, data map[string]string) error {
	if err := templates.ExecuteTemplate(w, string(templateName)+".html", data); err != nil {
		return errors.Wrapf(err, "failed to execute email template %s", templateName)
	}
	return nil
}
