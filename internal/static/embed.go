package static

import (
	"embed"
	"io/fs"
)

//go:embed css
var files embed.FS

// FS holds the site stylesheets, rooted so that App.css sits at the top.
func FS() fs.FS {
	sub, err := fs.Sub(files, "css")
	if err != nil {
		panic(err)
	}

	return sub
}
