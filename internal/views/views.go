package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
)

//go:embed templates/*.html
var templatesFS embed.FS

const layoutFile = "templates/layout.html"

// Engine renders the embedded pages, each wrapped in the shared layout. It
// satisfies fiber.Views.
type Engine struct {
	pages map[string]*template.Template
}

func New() *Engine {
	return &Engine{}
}

func (e *Engine) Load() error {
	files, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return err
	}

	funcs := template.FuncMap{
		"money": func(amount float64) string { return fmt.Sprintf("$%.2f", amount) },
		"upper": strings.ToUpper,
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templatesFS, layoutFile, file)
		if err != nil {
			return fmt.Errorf("parse %s: %w", file, err)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(file, "templates/"), ".html")
		pages[name] = tmpl
	}
	e.pages = pages
	return nil
}

func (e *Engine) Render(out io.Writer, name string, binding interface{}, _ ...string) error {
	tmpl, ok := e.pages[name]
	if !ok {
		return fmt.Errorf("view %q not found", name)
	}
	return tmpl.ExecuteTemplate(out, "layout.html", binding)
}
