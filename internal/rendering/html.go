package rendering

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/jonathan/company-research/internal/formatting"
	"github.com/jonathan/company-research/internal/types"
)

//go:embed templates/*.html
var templateFiles embed.FS

var templateFuncs = template.FuncMap{
	"isHeading":          func(b formatting.Block) bool { return b.Kind == formatting.Heading },
	"isList":             func(b formatting.Block) bool { return b.Kind == formatting.List },
	"contentUnavailable": func() string { return formatting.ContentUnavailable },
	"presentRating":      formatting.PresentRating,
	"formatDate":         formatting.FormatDate,
}

var templates = template.Must(template.New("rendering").Funcs(templateFuncs).ParseFS(templateFiles, "templates/*.html"))

// HTML renders blocks as an HTML fragment. All text is escaped; only the
// markup produced for headings, lists, paragraphs and emphasis is emitted.
func HTML(blocks []formatting.Block) (string, error) {
	var buf bytes.Buffer
	if err := execute(&buf, "blocks", blocks); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Report writes a complete HTML research report page.
func Report(w io.Writer, resp *types.ResearchResponse) error {
	if resp == nil {
		return &RenderError{Message: "no research result to render"}
	}
	return execute(w, "report", resp)
}

// Index writes the landing page with the research form.
func Index(w io.Writer) error {
	return execute(w, "index", nil)
}

func execute(w io.Writer, name string, data any) error {
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		return &TemplateError{Name: name, Message: "failed to execute template", Cause: err}
	}
	return nil
}
