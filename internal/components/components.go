package components

//go:generate go run github.com/a-h/templ/cmd/templ@v0.2.476 generate

import (
	"bytes"
	"context"
	"io"
)

type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

type ErrorProps struct {
	Code  int
	Title string
	Msg   string
}

var stylesheets = []string{"/static/App.css", "/static/Hero.css"}

// RenderString renders c into a string.
func RenderString(ctx context.Context, c Component) (string, error) {
	var buf bytes.Buffer

	err := c.Render(ctx, &buf)
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}
