package summarizer

import (
	"net/http"
	"time"

	"lexbrief/internal/logger"
	"lexbrief/internal/trace"
)

// loggingRoundTripper logs every outbound call and forwards the inbound
// request ID. Bodies are not logged: they carry the user's document.
type loggingRoundTripper struct {
	inner http.RoundTripper
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	requestID := req.Header.Get(trace.HeaderRequestID)
	if requestID == "" {
		if requestID = trace.RequestID(req.Context()); requestID != "" {
			// RoundTrippers must not modify the caller's request.
			req = req.Clone(req.Context())
			req.Header.Set(trace.HeaderRequestID, requestID)
		}
	}

	resp, err := l.inner.RoundTrip(req)
	duration := time.Since(start)
	if err != nil {
		logger.ErrorWithFields("summarizer request failed", logger.Fields{
			"method":     req.Method,
			"url":        req.URL.String(),
			"duration":   duration.String(),
			"request_id": requestID,
			"error":      err.Error(),
		})
		return nil, err
	}

	logger.DebugWithFields("summarizer request done", logger.Fields{
		"method":     req.Method,
		"url":        req.URL.String(),
		"status":     resp.StatusCode,
		"duration":   duration.String(),
		"request_id": requestID,
	})
	return resp, nil
}

// newHTTPClient builds the outbound client. A zero timeout waits for the
// service indefinitely.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &loggingRoundTripper{inner: http.DefaultTransport},
	}
}
