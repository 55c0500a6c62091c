// Package trace carries the inbound request ID through contexts so outbound
// calls to the analysis service can be correlated with the page request.
package trace

import "context"

type ctxKey string

const ctxKeyRequestID ctxKey = "request_id"

// HeaderRequestID is propagated inbound and outbound.
const HeaderRequestID = "X-Request-ID"

// WithRequestID stores the request ID on ctx.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// RequestID returns the request ID stored on ctx, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}
