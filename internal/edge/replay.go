package edge

import (
	"fmt"
	"net/http"

	"github.com/jakoblorz/stackinit/internal/logging"
)

// ReplayHeader instructs the edge network to re-execute the request
// against another region.
const ReplayHeader = "fly-replay"

// replaySafeMethods can be answered from a read replica.
var replaySafeMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// ReplayGate rejects state-mutating requests on read replicas with a 409
// carrying a replay hint naming the primary region. Best effort: the edge
// platform performs the actual re-execution.
func ReplayGate(region RegionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc := region()
			if replaySafeMethods[r.Method] || !rc.InSecondaryRegion() {
				next.ServeHTTP(w, r)
				return
			}

			logging.Info().
				Str("path", r.URL.Path).
				Str("method", r.Method).
				Str("primary_region", rc.Primary).
				Str("current_region", rc.Current).
				Str("request_id", GetRequestID(r.Context())).
				Msg("replaying request to primary region")

			replaysTotal.WithLabelValues(rc.Primary).Inc()

			w.Header().Set(ReplayHeader, fmt.Sprintf("region=%s", rc.Primary))
			w.WriteHeader(http.StatusConflict)
		})
	}
}
