package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/felixbrock/monument/internal/components"
	"github.com/felixbrock/monument/internal/config"
	"github.com/felixbrock/monument/internal/static"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

type ComponentBuilder struct {
	Page   func(title string) templ.Component
	App    func() templ.Component
	Index  func() templ.Component
	Hero   func() templ.Component
	NavBar func() templ.Component
	Footer func() templ.Component
	Error  func(props components.ErrorProps) templ.Component
}

// Fragments maps each fragment route name to the view it serves.
func (b ComponentBuilder) Fragments() map[string]func() templ.Component {
	return map[string]func() templ.Component{
		"app":    b.App,
		"index":  b.Index,
		"hero":   b.Hero,
		"navbar": b.NavBar,
		"footer": b.Footer,
	}
}

type App struct {
	Config           config.Config
	ComponentBuilder ComponentBuilder
}

func (a App) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(logRequests)
	r.Use(a.recoverer)
	r.Use(middleware.GetHead)

	r.Get("/healthz", healthz)

	r.Group(func(r chi.Router) {
		if a.Config.RateLimit > 0 {
			r.Use(a.limit(rate.NewLimiter(rate.Limit(a.Config.RateLimit), a.Config.RateBurst)))
		}

		r.Get("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(filesOnly{static.FS()}))).ServeHTTP)
		r.Method(http.MethodGet, "/", ComponentHandler(a.page))

		for name, build := range a.ComponentBuilder.Fragments() {
			r.Method(http.MethodGet, "/"+name, ComponentHandler(fragment(build)))
		}
	})

	r.NotFound(ComponentHandler(a.errorPage(get404())).ServeHTTP)
	r.MethodNotAllowed(ComponentHandler(a.errorPage(get405())).ServeHTTP)

	return r
}

// filesOnly hides directories so the file server never lists them.
type filesOnly struct {
	fs.FS
}

func (f filesOnly) Open(name string) (fs.File, error) {
	file, err := f.FS.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}

	return file, nil
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (a App) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Port,
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info(fmt.Sprintf("App running on %s...", a.Config.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
	defer cancel()

	slog.Info("App shutting down...")
	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
