package edge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	replaysTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "edge_replays_total",
		Help: "Requests answered with a replay hint, by primary region.",
	}, []string{"region"})

	slashRedirectsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "edge_slash_redirects_total",
		Help: "Permanent redirects issued for trailing-slash normalization.",
	})

	staticHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "edge_static_hits_total",
		Help: "Static files served, by cache class.",
	}, []string{"class"})
)
