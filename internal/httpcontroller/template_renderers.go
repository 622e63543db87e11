package httpcontroller

import (
	"bytes"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

// TemplateRenderer is a custom HTML template renderer for the Echo
// framework.
type TemplateRenderer struct {
	templates *template.Template
	logger    echo.Logger
}

// Render renders a template with the given data. The template is
// executed into a buffer first so a failed render never writes a
// partial page.
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	var buf bytes.Buffer
	if err := t.templates.ExecuteTemplate(&buf, name, data); err != nil {
		t.logger.Errorf("Error executing template %s: %v", name, err)
		return err
	}
	_, err := buf.WriteTo(w)
	if err != nil {
		t.logger.Errorf("Error writing template result: %v", err)
	}
	return err
}
