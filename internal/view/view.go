// Package view renders the console's HTML screens from embedded templates.
package view

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"swiftcourier-console/internal/logx"
	"swiftcourier-console/internal/session"
)

//go:embed templates/*.gohtml
var files embed.FS

// Page carries the fields every screen needs: the title shown in the tab,
// the current session for the navbar, and an optional inline error line.
type Page struct {
	Title string
	Sess  *session.Session
	Error string
}

// Renderer executes embedded templates. Pages are rendered into a buffer
// first so a template error never produces a half-written response.
type Renderer struct {
	t      *template.Template
	logger logx.Logger
}

// New parses the embedded templates.
func New(logger logx.Logger) (*Renderer, error) {
	if logger == nil {
		logger = logx.Nop()
	}
	funcs := template.FuncMap{
		"jsonify": func(v any) (template.JS, error) {
			raw, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return template.JS(raw), nil
		},
	}
	t, err := template.New("").Funcs(funcs).ParseFS(files, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("view: parse templates: %w", err)
	}
	return &Renderer{t: t, logger: logger}, nil
}

// Render writes the named page with the given status.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name+".gohtml", data); err != nil {
		r.logger.Error("template execute failed", logx.String("template", name), logx.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Debug("response write failed", logx.String("template", name), logx.Err(err))
	}
}
