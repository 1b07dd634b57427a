package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/webstarter/webstarter/pkg/apiclient"
)

//go:embed templates/*.html
var templateFiles embed.FS

// pages lists every view rendered inside the shared layout.
var pages = []string{"home", "login", "signup", "dashboard", "profile"}

// pageData is the single model handed to every template.
type pageData struct {
	AppName       string
	Title         string
	Authenticated bool
	User          *apiclient.User
	Error         string
	Notice        string
	// Form echoes submitted values back into the inputs after a failed
	// submission so the user does not retype everything.
	Form map[string]string
}

// parseTemplates builds one template set per page, each sharing layout.html.
func parseTemplates() (map[string]*template.Template, error) {
	tmpl := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.ParseFS(templateFiles, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %q: %w", page, err)
		}
		tmpl[page] = t
	}
	return tmpl, nil
}

// render writes a page into the layout. Render failures at this point mean a
// broken template, which is a programming error; the handler has usually
// already written the status header, so log-and-give-up is all that is left.
func (h *Handler) render(w http.ResponseWriter, status int, page string, data pageData) {
	t, ok := h.tmpl[page]
	if !ok {
		h.log.Error("unknown template", "page", page)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data.AppName = h.appName
	data.Authenticated = h.mgr.IsAuthenticated()
	if data.User == nil {
		data.User = h.mgr.User()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		h.log.Error("render failed", "page", page, "error", err)
	}
}
