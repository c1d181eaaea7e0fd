package edge

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func staticRegion(current, primary string) RegionSource {
	return func() RegionContext {
		return RegionContext{Current: current, Primary: primary}
	}
}

func testRenderer() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("rendered " + r.URL.Path))
	})
}

func newTestHandler(t *testing.T, region RegionSource) http.Handler {
	t.Helper()

	publicDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(publicDir, "build"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "build", "app-abc123.js"), []byte("console.log('app')"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "favicon.ico"), []byte("icon"), 0644))

	cfg := &Config{Port: 3000, PublicDir: publicDir}
	return NewHandler(cfg, region, testRenderer())
}

func TestGateStampsHeaders(t *testing.T) {
	handler := newTestHandler(t, staticRegion("iad", "iad"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, "iad", rec.Header().Get(RegionHeader))
	require.Equal(t, "max-age=3153600000; includeSubDomains", rec.Header().Get("Strict-Transport-Security"))
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestGateStampsUnknownRegion(t *testing.T) {
	handler := newTestHandler(t, staticRegion("", ""))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, "unknown", rec.Header().Get(RegionHeader))
}

func TestGateHonorsUpstreamRequestID(t *testing.T) {
	handler := newTestHandler(t, staticRegion("iad", "iad"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, "upstream-id", rec.Header().Get("X-Request-ID"))
}

func TestTrailingSlashRedirect(t *testing.T) {
	handler := newTestHandler(t, staticRegion("iad", "iad"))

	tests := []struct {
		url  string
		want string
	}{
		{"/posts/", "/posts"},
		{"/posts//", "/posts"},
		{"/posts/?page=2", "/posts?page=2"},
		{"/a//b///c/", "/a/b/c"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

		require.Equal(t, http.StatusMovedPermanently, rec.Code, "url: %s", tt.url)
		require.Equal(t, tt.want, rec.Header().Get("Location"), "url: %s", tt.url)
	}
}

func TestRootPathIsNotRedirected(t *testing.T) {
	handler := newTestHandler(t, staticRegion("iad", "iad"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestReplayGateOnSecondaryRegion(t *testing.T) {
	handler := newTestHandler(t, staticRegion("lhr", "iad"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/widgets", nil))

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "region=iad", rec.Header().Get(ReplayHeader))
}

func TestReplayGateRunsBeforeStaticServing(t *testing.T) {
	handler := newTestHandler(t, staticRegion("lhr", "iad"))

	// a write aimed at a static path must be replayed, never served locally
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/favicon.ico", nil))

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "region=iad", rec.Header().Get(ReplayHeader))
}

func TestReplayGatePassesSafeMethods(t *testing.T) {
	handler := newTestHandler(t, staticRegion("lhr", "iad"))

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(method, "/posts", nil))

		require.NotEqual(t, http.StatusConflict, rec.Code, "method: %s", method)
	}
}

func TestReplayGateInactiveOnPrimary(t *testing.T) {
	tests := []struct {
		name    string
		current string
		primary string
	}{
		{"same region", "iad", "iad"},
		{"current unset", "", "iad"},
		{"primary unset", "lhr", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t, staticRegion(tt.current, tt.primary))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/widgets", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			require.Empty(t, rec.Header().Get(ReplayHeader))
		})
	}
}

func TestStaticBuildAssetsAreImmutable(t *testing.T) {
	handler := newTestHandler(t, staticRegion("iad", "iad"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/build/app-abc123.js", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "public, max-age=31536000, immutable", rec.Header().Get("Cache-Control"))
}

func TestStaticAssetsGetHourCache(t *testing.T) {
	handler := newTestHandler(t, staticRegion("iad", "iad"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
}

func TestMissingStaticFileFallsThroughToRenderer(t *testing.T) {
	handler := newTestHandler(t, staticRegion("iad", "iad"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no-such-file.css", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "rendered /no-such-file.css", rec.Body.String())
	require.Empty(t, rec.Header().Get("Cache-Control"))
}

func TestCompression(t *testing.T) {
	handler := newTestHandler(t, staticRegion("iad", "iad"))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	gz, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(gz)
	require.NoError(t, err)
	require.Equal(t, "rendered /posts", string(body))
}

func TestMetricsScrapeDecodesInOnePass(t *testing.T) {
	// even on a secondary region: a scrape is never replayed or redirected
	handler := newTestHandler(t, staticRegion("lhr", "iad"))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.Bytes()
	if rec.Header().Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(bytes.NewReader(body))
		require.NoError(t, err)
		body, err = io.ReadAll(gz)
		require.NoError(t, err)
	}

	require.Contains(t, string(body), "go_goroutines")
	require.NotContains(t, string(body), "\x1f\x8b", "scrape body must not contain a nested gzip stream")

	// gate headers belong to the gate chain, not the scrape endpoint
	require.Empty(t, rec.Header().Get(RegionHeader))
}

func TestGateMetricsIncrement(t *testing.T) {
	handler := newTestHandler(t, staticRegion("lhr", "iad"))

	redirectsBefore := testutil.ToFloat64(slashRedirectsTotal)
	replaysBefore := testutil.ToFloat64(replaysTotal.WithLabelValues("iad"))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/posts/", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/widgets", nil))

	require.Equal(t, redirectsBefore+1, testutil.ToFloat64(slashRedirectsTotal))
	require.Equal(t, replaysBefore+1, testutil.ToFloat64(replaysTotal.WithLabelValues("iad")))
}

func TestCanonicalPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/posts/", "/posts"},
		{"/posts//", "/posts"},
		{"/a//b/", "/a/b"},
		{"///", "/"},
		{"/posts", "/posts"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, CanonicalPath(tt.in), "path: %s", tt.in)
	}
}
