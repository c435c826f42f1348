// Package web serves the embedded single-page admin frontend.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed static
var static embed.FS

// Handler serves the frontend at /app. Unknown paths under /app fall
// back to index.html so the page owns its own state.
func Handler() http.Handler {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	fileServer := http.FileServer(http.FS(sub))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/app")
		path = strings.TrimPrefix(path, "/")
		if path == "" {
			path = "index.html"
		}
		if _, err := fs.Stat(sub, path); err != nil {
			path = "index.html"
		}

		r2 := r.Clone(r.Context())
		r2.URL.Path = "/" + path
		fileServer.ServeHTTP(w, r2)
	})
}
