package transport

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"login", "dashboard", "achievements", "comments", "resume"}

type pages struct {
	byName map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"stamp": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
}

func mustParsePages() *pages {
	p := &pages{byName: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		tmpl := template.Must(template.New("layout.html").Funcs(templateFuncs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/"+name+".html",
		))
		p.byName[name] = tmpl
	}
	return p
}

// render executes a page into a buffer first so a template error never
// leaves a half-written response.
func (p *pages) render(w http.ResponseWriter, status int, name string, data any) error {
	tmpl, ok := p.byName[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
