// Package reqctx carries request-scoped data through context.Context.
//
// All context keys are private unexported types to prevent collisions.
// Access is provided through type-safe getter and setter functions.
//
// Setting values (typically in middleware):
//
//	ctx = reqctx.WithRequestMeta(ctx, &reqctx.RequestMeta{
//	    RequestID:   "abc-123",
//	    ClientIP:    "192.168.1.1",
//	    RequestedAt: time.Now(),
//	})
//
// Getting values (in handlers and services):
//
//	rid := reqctx.RequestIDFromContext(ctx)
//
// RequestMeta is set by the HTTP request-id middleware for every request.
// The session ID is set by handlers that address /sessions/:id.
package reqctx
