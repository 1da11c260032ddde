// CLAUDE:SUMMARY HTTP middleware for the snapshot server: security headers, body limits, request IDs, rate limiting.
// Package shield provides the HTTP middleware stack for the snapshot
// server. It consolidates security headers, body limits, request ID
// tracing, HEAD method handling, and rate limiting into one importable
// package.
//
// Usage:
//
//	r := chi.NewRouter()
//	for _, mw := range shield.DefaultStack() {
//	    r.Use(mw)
//	}
package shield

import "net/http"

// DefaultStack returns the standard middleware stack for the snapshot
// server, ordered: HeadToGet → SecurityHeaders → MaxJSONBody → RequestID.
// The server binds to loopback by default, so rate limiting is not part
// of the default stack; add NewRateLimiter when exposing it.
func DefaultStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		HeadToGet,
		SecurityHeaders(DefaultHeaders()),
		MaxJSONBody(1 << 20),
		RequestID,
	}
}

// HeadToGet converts HEAD requests to GET so that route handlers
// registered with r.Get() respond with 200 instead of 405. Go's
// net/http strips the body for HEAD responses.
func HeadToGet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			r.Method = http.MethodGet
		}
		next.ServeHTTP(w, r)
	})
}

// MaxJSONBody returns middleware that limits the request body size for
// JSON POST requests. Other content types are passed through; the only
// POST surface is the capture endpoint, which takes a small JSON body.
func MaxJSONBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Content-Type") == "application/json" {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
