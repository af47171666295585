// Package render is the boundary to the template collaborator: handlers
// hand it a view name and a data context and get a response body back.
package render

import (
	"html/template"
	"log"
	"net/http"
)

type Context map[string]any

type Renderer interface {
	HTML(w http.ResponseWriter, status int, view string, data Context)
}

type Templates struct {
	t *template.Template
}

func New(glob string) (*Templates, error) {
	t, err := template.ParseGlob(glob)
	if err != nil {
		return nil, err
	}
	return &Templates{t: t}, nil
}

func (tp *Templates) HTML(w http.ResponseWriter, status int, view string, data Context) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tp.t.ExecuteTemplate(w, view, data); err != nil {
		log.Printf("render %s: %v", view, err)
	}
}

// NotFound renders the shared 404 page.
func NotFound(r Renderer, w http.ResponseWriter, path string) {
	r.HTML(w, http.StatusNotFound, "error.html", Context{"Error": 404, "Path": path})
}
