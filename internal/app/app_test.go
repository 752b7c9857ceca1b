package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/felixbrock/monument/internal/components"
	"github.com/felixbrock/monument/internal/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builder() ComponentBuilder {
	return ComponentBuilder{
		Page:   components.Page,
		App:    components.App,
		Index:  components.Index,
		Hero:   components.Hero,
		NavBar: components.NavBar,
		Footer: components.Footer,
		Error:  components.Error,
	}
}

func newApp(cfg config.Config) App {
	return App{Config: cfg, ComponentBuilder: builder()}
}

func get(t *testing.T, h http.Handler, method string, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

	return rec
}

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()

	s, err := components.RenderString(context.Background(), c)
	require.NoError(t, err)

	return s
}

func TestRouterPage(t *testing.T) {
	h := newApp(config.Default()).Router()

	rec := get(t, h, http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, htmlContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, renderString(t, components.Page("Monument")), rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRouterFragments(t *testing.T) {
	h := newApp(config.Default()).Router()

	for name, build := range builder().Fragments() {
		t.Run(name, func(t *testing.T) {
			rec := get(t, h, http.MethodGet, "/"+name)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, renderString(t, build()), rec.Body.String())
		})
	}
}

func TestRouterIsIdempotent(t *testing.T) {
	h := newApp(config.Default()).Router()

	first := get(t, h, http.MethodGet, "/").Body.String()
	second := get(t, h, http.MethodGet, "/").Body.String()

	assert.Equal(t, first, second)
}

func TestRouterStatic(t *testing.T) {
	h := newApp(config.Default()).Router()

	rec := get(t, h, http.MethodGet, "/static/Hero.css")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".vertical-center")
}

func TestRouterStaticRejectsPost(t *testing.T) {
	rec := get(t, newApp(config.Default()).Router(), http.MethodPost, "/static/App.css")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Method not allowed</h1>")
}

func TestRouterStaticHidesDirectory(t *testing.T) {
	rec := get(t, newApp(config.Default()).Router(), http.MethodGet, "/static/")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "App.css")
}

func TestRouterHealthz(t *testing.T) {
	rec := get(t, newApp(config.Default()).Router(), http.MethodGet, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRouterHead(t *testing.T) {
	rec := get(t, newApp(config.Default()).Router(), http.MethodHead, "/hero")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterNotFound(t *testing.T) {
	rec := get(t, newApp(config.Default()).Router(), http.MethodGet, "/missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Not found</h1>")
}

func TestRouterMethodNotAllowed(t *testing.T) {
	rec := get(t, newApp(config.Default()).Router(), http.MethodPost, "/")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Method not allowed</h1>")
}

func TestRouterRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit = 0.001
	cfg.RateBurst = 1
	h := newApp(cfg).Router()

	assert.Equal(t, http.StatusOK, get(t, h, http.MethodGet, "/").Code)

	rec := get(t, h, http.MethodGet, "/")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "Too many requests")
}

func TestRouterHealthzNotRateLimited(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit = 0.001
	cfg.RateBurst = 1
	h := newApp(cfg).Router()

	assert.Equal(t, http.StatusOK, get(t, h, http.MethodGet, "/").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(t, h, http.MethodGet, "/hero").Code)

	rec := get(t, h, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRouterRateLimitDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit = 0
	h := newApp(cfg).Router()

	for i := 0; i < 100; i++ {
		require.Equal(t, http.StatusOK, get(t, h, http.MethodGet, "/hero").Code)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	h := newApp(config.Default()).Router()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestRequestIDRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"too long":    strings.Repeat("a", maxRequestIDLen+1),
		"spaces":      "abc 123",
		"header junk": "abc\"><script>",
	}

	h := newApp(config.Default()).Router()

	for name, inbound := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(requestIDHeader, inbound)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			id := rec.Header().Get(requestIDHeader)
			assert.NotEqual(t, inbound, id)
			_, err := uuid.Parse(id)
			assert.NoError(t, err)
		})
	}
}

func TestValidRequestID(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"abc-123", true},
		{"trace_01.a", true},
		{strings.Repeat("x", maxRequestIDLen), true},
		{strings.Repeat("x", maxRequestIDLen+1), false},
		{"a/b", false},
		{"é", false},
	}
	for _, c := range cases {
		if got := validRequestID(c.input); got != c.want {
			t.Errorf("validRequestID(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestRecovererAfterResponseStarted(t *testing.T) {
	a := newApp(config.Default())
	h := a.recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("partial"))
		panic("late")
	}))

	rec := get(t, h, http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}

func TestRecovererRendersErrorPage(t *testing.T) {
	b := builder()
	b.Hero = func() templ.Component { panic("boom") }
	h := App{Config: config.Default(), ComponentBuilder: b}.Router()

	rec := get(t, h, http.MethodGet, "/hero")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}

func TestComponentHandlerRenderError(t *testing.T) {
	failing := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return errors.New("broken")
	})
	h := ComponentHandler(func(w http.ResponseWriter, r *http.Request) *ComponentResponse {
		return &ComponentResponse{Component: failing, Code: 200, ContentType: htmlContentType}
	})

	rec := get(t, h, http.MethodGet, "/")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "templ: failed to render template"))
}

func TestComponentHandlerDefaultsTo200(t *testing.T) {
	h := ComponentHandler(func(w http.ResponseWriter, r *http.Request) *ComponentResponse {
		return &ComponentResponse{Component: components.Footer(), ContentType: htmlContentType}
	})

	rec := get(t, h, http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `<footer class="Footer"></footer>`, rec.Body.String())
}

func TestStartShutsDownOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Port = "0"
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- newApp(cfg).Start(ctx) }()

	cancel()
	assert.NoError(t, <-done)
}
