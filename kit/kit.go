// Package kit is the transport-neutral endpoint plumbing: a request in,
// a response out, middleware composed around it. Both the MCP tools and
// the HTTP handlers sit on the same Endpoint shape.
package kit

import "context"

// Endpoint handles one request.
type Endpoint func(ctx context.Context, req any) (any, error)

// Middleware wraps an Endpoint.
type Middleware func(Endpoint) Endpoint

// Chain composes middlewares left to right: the first argument is the
// outermost wrapper.
func Chain(mws ...Middleware) Middleware {
	return func(next Endpoint) Endpoint {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}
