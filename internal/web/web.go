// Package web serves the embedded guest-facing upload and gallery page.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// Handler serves the single-page UI: index.html at the root and the rest of
// the static assets by path.
func Handler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// embed guarantees the directory exists; failing here means a broken build.
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
