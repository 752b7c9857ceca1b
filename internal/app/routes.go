package app

import (
	"fmt"
	"net/http"

	"github.com/a-h/templ"
)

const htmlContentType = "text/html; charset=utf-8"

func (a App) page(w http.ResponseWriter, r *http.Request) *ComponentResponse {
	return &ComponentResponse{Component: a.ComponentBuilder.Page(a.Config.Title), Code: 200, ContentType: htmlContentType, Error: nil}
}

func fragment(build func() templ.Component) ComponentHandler {
	return func(w http.ResponseWriter, r *http.Request) *ComponentResponse {
		return &ComponentResponse{Component: build(), Code: 200, ContentType: htmlContentType, Error: nil}
	}
}

func (a App) errorPage(e errCtx) ComponentHandler {
	return func(w http.ResponseWriter, r *http.Request) *ComponentResponse {
		var err error
		if e.Code >= 500 {
			err = fmt.Errorf("%s %s: %s", r.Method, r.URL.Path, e.Title)
		}

		return &ComponentResponse{Component: a.ComponentBuilder.Error(e.props()), Code: e.Code, ContentType: htmlContentType, Error: err}
	}
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "ok")
}
