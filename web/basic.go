package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/MrEthical07/shopAuth/middleware"
)

//go:embed views/*.gohtml
var viewFS embed.FS

// BasicRenderer renders the built-in unstyled views. Storefronts with their
// own template stack supply their own [Renderer] instead.
type BasicRenderer struct {
	tmpl *template.Template
}

// NewBasicRenderer parses the embedded views.
func NewBasicRenderer() (*BasicRenderer, error) {
	tmpl, err := template.New("views").Funcs(template.FuncMap{
		"csrfField": func(token string) template.HTML {
			return template.HTML(fmt.Sprintf(
				`<input type="hidden" name="%s" value="%s">`,
				middleware.CSRFField, template.HTMLEscapeString(token),
			))
		},
	}).ParseFS(viewFS, "views/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse views: %w", err)
	}
	return &BasicRenderer{tmpl: tmpl}, nil
}

// Render writes the named view.
func (r *BasicRenderer) Render(w http.ResponseWriter, status int, view string, data ViewData) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return r.tmpl.ExecuteTemplate(w, view+".gohtml", data)
}
