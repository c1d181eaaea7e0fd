package edge

import (
	"net/http"
	"strings"
)

// CanonicalPath strips trailing separators and collapses runs of
// repeated separators. The root path is left alone.
func CanonicalPath(path string) string {
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		return "/"
	}

	var b strings.Builder
	b.Grow(len(trimmed))
	var prevSlash bool
	for _, c := range []byte(trimmed) {
		if c == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteByte(c)
	}
	return b.String()
}

// TrailingSlashRedirect permanently redirects any path with trailing
// separators to its canonical form, preserving the query string verbatim.
func TrailingSlashRedirect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if len(path) > 1 && strings.HasSuffix(path, "/") {
			target := CanonicalPath(path)
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}

			slashRedirectsTotal.Inc()
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}
