package web

import (
	"context"

	"github.com/go-chi/chi/v5/middleware"
)

type requestIDKey struct{}

// WithRequestID adds a request ID to the context. The ID is stored under chi's key as well,
// so middleware.GetReqID and the logging handler see it.
func WithRequestID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, middleware.RequestIDKey, id)
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns the request ID and a boolean indicating whether it was found.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}
