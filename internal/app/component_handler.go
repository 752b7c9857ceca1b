package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

type component interface {
	Render(ctx context.Context, w io.Writer) error
}

type ComponentResponse struct {
	Error       error
	Code        int
	ContentType string
	Component   component
}

type ComponentHandler func(http.ResponseWriter, *http.Request) *ComponentResponse

func (ch ComponentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := ch(w, r)

	if resp.Error != nil {
		slog.Error(fmt.Sprintf(`Error occured: %s`, resp.Error.Error()), "request_id", RequestID(r.Context()))
	}

	// Render before writing the header so a failed render still gets a clean 500.
	var buf bytes.Buffer
	err := resp.Component.Render(r.Context(), &buf)
	if err != nil {
		slog.Error(fmt.Sprintf(`Error occured: %s`, err.Error()), "request_id", RequestID(r.Context()))
		http.Error(w, "templ: failed to render template", http.StatusInternalServerError)
		return
	}

	code := resp.Code
	if code == 0 {
		code = http.StatusOK
	}

	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(code)

	_, err = w.Write(buf.Bytes())
	if err != nil {
		slog.Error(fmt.Sprintf(`Error occured: %s`, err.Error()), "request_id", RequestID(r.Context()))
	}
}
