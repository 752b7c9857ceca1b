package export

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/felixbrock/monument/internal/app"
	"github.com/felixbrock/monument/internal/static"
)

type file struct {
	name   string
	render func(ctx context.Context) ([]byte, error)
}

// Export writes the rendered site into dir: index.html, one file per
// fragment route under fragments/, and the stylesheets under static/.
func Export(ctx context.Context, dir string, builder app.ComponentBuilder, title string) error {
	files, err := plan(builder, title)
	if err != nil {
		return err
	}

	for _, sub := range []string{"fragments", "static"} {
		err = os.MkdirAll(filepath.Join(dir, sub), 0o755)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		content, err := f.render(ctx)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", f.name, err)
		}

		path := filepath.Join(dir, filepath.FromSlash(f.name))
		err = os.WriteFile(path, content, 0o644)
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		slog.Debug("export.file", "path", path, "bytes", len(content))
	}

	slog.Info("export.done", "dir", dir, "files", len(files))

	return nil
}

func plan(builder app.ComponentBuilder, title string) ([]file, error) {
	files := []file{{
		name: "index.html",
		render: func(ctx context.Context) ([]byte, error) {
			var buf bytes.Buffer
			err := builder.Page(title).Render(ctx, &buf)
			return buf.Bytes(), err
		},
	}}

	fragments := builder.Fragments()
	names := make([]string, 0, len(fragments))
	for name := range fragments {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		build := fragments[name]
		files = append(files, file{
			name: "fragments/" + name + ".html",
			render: func(ctx context.Context) ([]byte, error) {
				var buf bytes.Buffer
				err := build().Render(ctx, &buf)
				return buf.Bytes(), err
			},
		})
	}

	assets := static.FS()
	sheets, err := fs.Glob(assets, "*.css")
	if err != nil {
		return nil, fmt.Errorf("failed to list stylesheets: %w", err)
	}

	for _, sheet := range sheets {
		files = append(files, file{
			name: "static/" + sheet,
			render: func(context.Context) ([]byte, error) {
				return fs.ReadFile(assets, sheet)
			},
		})
	}

	return files, nil
}
