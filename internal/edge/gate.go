// Package edge implements the request gate every HTTP request passes
// through before reaching the application renderer: header stamping,
// trailing-slash normalization, write-replay signaling for read
// replicas, compression, and static asset serving.
//
// The gate is a linear filter chain with early exit. Ordering matters:
// the replay check runs strictly before static serving, so a
// state-mutating request aimed at a static path is never answered
// locally by a secondary region.
package edge

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHandler assembles the gate chain around the application renderer.
// The metrics endpoint sits outside the chain: promhttp compresses its
// own responses and a scrape must not be slash-redirected or replayed.
func NewHandler(cfg *Config, region RegionSource, renderer http.Handler) http.Handler {
	gate := chi.Chain(
		StampHeaders(region),
		RequestID,
		TrailingSlashRedirect,
		ReplayGate(region),
		Compression,
		StaticAssets(cfg.PublicDir),
	).Handler(renderer)

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.NotFound(gate.ServeHTTP)

	return r
}
