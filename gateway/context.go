package gateway

import "context"

type requestIDContextKey struct{}

// WithRequestID attaches a correlation ID to ctx. [HTTP] stamps it on the
// outbound X-Request-ID header; when absent a fresh UUID is generated per
// call.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, requestID)
}

// RequestIDFromContext describes the requestidfromcontext operation and its
// observable behavior.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	requestID, _ := ctx.Value(requestIDContextKey{}).(string)
	return requestID
}
