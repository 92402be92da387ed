package export

import (
	"bytes"
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var documentTemplate = template.Must(
	template.New("document.html").
		Funcs(template.FuncMap{
			"safeHTML": func(s string) template.HTML { return template.HTML(s) },
			"year":     func() int { return time.Now().Year() },
		}).
		ParseFS(templateFS, "templates/document.html"),
)

// TemplateData holds data for document template rendering. Content is
// stored HTML and rendered verbatim.
type TemplateData struct {
	Title     string
	Subtitle  string
	Author    string
	Category  string
	UpdatedAt time.Time
	Content   string
}

// RenderDocumentHTML renders the printable document page.
func RenderDocumentHTML(data TemplateData) (string, error) {
	if data.Category == "" {
		data.Category = "Uncategorized"
	}
	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
