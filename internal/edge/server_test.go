package edge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestServerStopsOnContextCancel(t *testing.T) {
	cfg := &Config{Port: 0, PublicDir: t.TempDir()}
	srv := NewServer(cfg, testRenderer())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestDefaultRenderer(t *testing.T) {
	t.Setenv("FLY_REGION", "ams")

	cfg := &Config{}
	rec := httptest.NewRecorder()
	DefaultRenderer(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "ams")
}
