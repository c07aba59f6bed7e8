package server

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"
)

// handleSPA serves the built frontend and its media from dir. Unknown paths
// get index.html so client-side routes resolve; unknown API paths get a
// JSON 404 instead.
func handleSPA(dir string) http.HandlerFunc {
	root := http.Dir(dir)
	files := http.FileServer(root)
	index := filepath.Join(dir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if f, err := root.Open(path.Clean("/" + r.URL.Path)); err == nil {
			info, statErr := f.Stat()
			f.Close()
			if statErr == nil && !info.IsDir() {
				files.ServeHTTP(w, r)
				return
			}
		}

		if strings.HasPrefix(r.URL.Path, "/api/") {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		http.ServeFile(w, r, index)
	}
}
