package edge

import "os"

// RegionContext describes where this request is being handled relative
// to the designated writer region. It is recomputed per request from the
// process environment; the platform may change region assignments
// between deploys.
type RegionContext struct {
	Current string
	Primary string
}

// RegionSource yields the region context for the current request.
type RegionSource func() RegionContext

// RegionFromEnv reads the region context from the process environment.
func RegionFromEnv() RegionContext {
	return RegionContext{
		Current: os.Getenv("FLY_REGION"),
		Primary: os.Getenv("PRIMARY_REGION"),
	}
}

// InSecondaryRegion reports whether this instance is a read replica:
// both regions known and different.
func (rc RegionContext) InSecondaryRegion() bool {
	return rc.Current != "" && rc.Primary != "" && rc.Current != rc.Primary
}

// CurrentOrUnknown returns the current region or the "unknown" sentinel.
func (rc RegionContext) CurrentOrUnknown() string {
	if rc.Current == "" {
		return "unknown"
	}
	return rc.Current
}
