package edge

import "net/http"

// RegionHeader names the response header carrying the serving region.
const RegionHeader = "X-Stack-Region"

// hstsValue pins HTTPS for 100 years.
const hstsValue = "max-age=3153600000; includeSubDomains"

// StampHeaders sets the region and transport-security headers on every
// response before any other gate step runs.
func StampHeaders(region RegionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(RegionHeader, region().CurrentOrUnknown())
			w.Header().Set("Strict-Transport-Security", hstsValue)
			next.ServeHTTP(w, r)
		})
	}
}
