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
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/prestamos/loan-service/internal/infrastructure/flash"
	"github.com/prestamos/loan-service/pkg/money"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// pages maps a page name to the layout parsed together with that page.
type pages map[string]*template.Template

func parsePages(f money.Formatter) (pages, error) {
	funcs := template.FuncMap{
		"money":   func(d decimal.Decimal) string { return f.Format(d) },
		"percent": func(d decimal.Decimal) string { return f.Percent(d) },
		"stamp": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("2006-01-02 15:04")
		},
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	out := pages{}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

// view is what every page template receives.
type view struct {
	Title  string
	Active string
	Flash  *flash.Message
	Data   any
}

func (p pages) render(c *gin.Context, name string, v view) error {
	t, ok := p[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", v); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	return nil
}
