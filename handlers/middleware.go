package handlers

import (
	"context"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"constructly/services"
)

type contextKey string

const activeRegionKey contextKey = "activeRegion"

const regionCookieName = "active_region"

// GetActiveRegion returns the user's remembered region from the request
// context, or "" when none is set.
func GetActiveRegion(r *http.Request) string {
	if region, ok := r.Context().Value(activeRegionKey).(string); ok {
		return region
	}
	return ""
}

// setActiveRegion persists the region choice in a cookie so later visits
// default to it.
func setActiveRegion(e *core.RequestEvent, region string) {
	http.SetCookie(e.Response, &http.Cookie{
		Name:     regionCookieName,
		Value:    region,
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 365,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// knownRegion reports whether region is one of the configured options.
func knownRegion(region string) bool {
	for _, r := range services.RegionOptions {
		if r == region {
			return true
		}
	}
	return false
}

// ActiveRegionMiddleware reads the region cookie and stores the value in
// the request context for handlers that default to it.
func ActiveRegionMiddleware(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		cookie, err := e.Request.Cookie(regionCookieName)
		if err == nil && knownRegion(cookie.Value) {
			ctx := context.WithValue(e.Request.Context(), activeRegionKey, cookie.Value)
			e.Request = e.Request.WithContext(ctx)
		}
		return e.Next()
	}
}
