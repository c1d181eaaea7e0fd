package edge

import (
	"net/http"
	"strings"
)

// BuildPathPrefix is the URL prefix of fingerprinted build output.
const BuildPathPrefix = "/build/"

const (
	// immutableCacheControl is for fingerprinted build assets (1 year).
	immutableCacheControl = "public, max-age=31536000, immutable"

	// defaultCacheControl is for everything else in the public dir (1 hour).
	defaultCacheControl = "public, max-age=3600"
)

// StaticAssets serves files from publicDir with a cache policy split by
// path class. Requests with no matching file fall through to the next
// handler.
func StaticAssets(publicDir string) func(http.Handler) http.Handler {
	root := http.Dir(publicDir)
	fileServer := http.FileServer(root)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			if !fileExists(root, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			if strings.HasPrefix(r.URL.Path, BuildPathPrefix) {
				w.Header().Set("Cache-Control", immutableCacheControl)
				staticHitsTotal.WithLabelValues("immutable").Inc()
			} else {
				w.Header().Set("Cache-Control", defaultCacheControl)
				staticHitsTotal.WithLabelValues("default").Inc()
			}

			fileServer.ServeHTTP(w, r)
		})
	}
}

// fileExists checks if the path resolves to a regular file under root
func fileExists(root http.Dir, path string) bool {
	f, err := root.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return false
	}

	return !stat.IsDir()
}
