package edge

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/jakoblorz/stackinit/internal/logging"
)

const shutdownTimeout = 10 * time.Second

// Server is the long-lived edge process fronting the application.
type Server struct {
	cfg      *Config
	renderer http.Handler
}

// NewServer creates a server around the given renderer. A nil renderer
// falls back to the built-in index page.
func NewServer(cfg *Config, renderer http.Handler) *Server {
	if renderer == nil {
		renderer = DefaultRenderer(cfg)
	}
	return &Server{cfg: cfg, renderer: renderer}
}

// Run serves until ctx is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Port),
		Handler: NewHandler(s.cfg, RegionFromEnv, s.renderer),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logging.Info().
		Int("port", s.cfg.Port).
		Str("region", RegionFromEnv().CurrentOrUnknown()).
		Str("env", s.cfg.AppEnv).
		Msg("edge server listening")

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logging.Info().Msg("edge server stopped")
	return nil
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>stackinit</title></head>
<body>
<h1>It works!</h1>
<p>Served from region {{.Region}}.</p>
</body>
</html>
`))

// DefaultRenderer is a stand-in for the application renderer: a minimal
// index page. Deployments mount the real framework handler instead.
func DefaultRenderer(cfg *Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := indexTemplate.Execute(w, struct{ Region string }{RegionFromEnv().CurrentOrUnknown()})
		if err != nil {
			logging.Error().Err(err).Msg("failed to render index")
		}
	})
}
