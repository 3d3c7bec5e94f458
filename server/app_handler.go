package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// AppHandler delivers the built SPA bundles for both applications. The host
// router has already rewritten the path into the tenant namespace, so the
// assets directory mirrors that layout (assets/studio/..., assets/edit/...).
// Unknown paths inside a namespace fall back to that application's
// index.html, which is how single-page routing expects to be served.
func (s *Server) AppHandler() http.HandlerFunc {
	root := s.config.GetAssetsDir()
	fileServer := http.FileServer(http.Dir(root))

	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(root, filepath.Clean("/"+r.URL.Path))

		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}

		for _, t := range s.registry.All() {
			if strings.HasPrefix(r.URL.Path, t.PathPrefix) {
				http.ServeFile(w, r, filepath.Join(root, t.PathPrefix, "index.html"))
				return
			}
		}

		fileServer.ServeHTTP(w, r)
	}
}
