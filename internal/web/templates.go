// Package web holds the server-rendered pages and the gin renderer for them.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/Tofuswang/journey/internal/chart"
	"github.com/Tofuswang/journey/internal/models"
	"github.com/gin-gonic/gin/render"
)

//go:embed templates
var templateFS embed.FS

// Page is handed to the shared layout. Content carries the page specific data.
type Page struct {
	View    models.View
	Notice  string
	Content any
}

// Templates implements gin's render.HTMLRender. Every page owns a clone of
// the layout so each can define its own "content" block.
type Templates struct {
	pages map[string]*template.Template
}

var _ render.HTMLRender = (*Templates)(nil)

// Instance renders name through the layout.
func (t *Templates) Instance(name string, data any) render.Render {
	tmpl, ok := t.pages[name]
	if !ok {
		return missingPage(name)
	}
	return render.HTML{Template: tmpl, Name: "layout", Data: data}
}

// Has reports whether a page template named name was loaded.
func (t *Templates) Has(name string) bool {
	_, ok := t.pages[name]
	return ok
}

func Load() (*Templates, error) {
	return LoadFS(templateFS)
}

// LoadFS parses templates/layout.html and templates/partials/*.html as the
// shared base, then one clone per templates/*.html page.
func LoadFS(fsys fs.FS) (*Templates, error) {
	base, err := template.New("base").Funcs(FuncMap()).ParseFS(fsys, "templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pageFiles, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, f := range pageFiles {
		name := path.Base(f)
		if name == "layout.html" {
			continue
		}
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := clone.ParseFS(fsys, f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = clone
	}
	return &Templates{pages: pages}, nil
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"add":        func(a, b int) int { return a + b },
		"legalViews": models.LegalViews,
		"chartSVG":   ChartSVG,
		"tierColor":  func(score int) string { return chart.TierFor(models.ClampScore(score)).Color() },
		"fieldError": fieldError,
	}
}

// ChartSVG renders the emotion chart of rec for inline use in a page.
func ChartSVG(rec models.JourneyRecord) template.HTML {
	var buf bytes.Buffer
	chart.RenderSVG(&buf, chart.Build(rec))
	out := buf.String()
	// drop the XML prolog, it is not valid inside an HTML document
	if i := strings.Index(out, "<svg"); i > 0 {
		out = out[i:]
	}
	return template.HTML(out)
}

// fieldError returns the message for field, or "" when it is valid.
func fieldError(errs []models.FieldError, field string) string {
	for _, e := range errs {
		if e.Field == field {
			return e.Msg
		}
	}
	return ""
}

type missingPage string

func (m missingPage) Render(w http.ResponseWriter) error {
	return fmt.Errorf("template %q not found", string(m))
}

func (m missingPage) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if header.Get("Content-Type") == "" {
		header.Set("Content-Type", "text/html; charset=utf-8")
	}
}
