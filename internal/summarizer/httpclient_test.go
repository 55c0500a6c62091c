package summarizer

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexbrief/internal/trace"
)

type recordingTransport struct {
	got *http.Request
}

func (r *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r.got = req
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("{}")),
		Request:    req,
	}, nil
}

func TestLoggingRoundTripper_LeavesCallerRequestUntouched(t *testing.T) {
	inner := &recordingTransport{}
	rt := &loggingRoundTripper{inner: inner}

	ctx := trace.WithRequestID(context.Background(), "req-9")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://analysis.test/", nil)
	require.NoError(t, err)

	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Empty(t, req.Header.Get(trace.HeaderRequestID))
	require.NotNil(t, inner.got)
	assert.NotSame(t, req, inner.got)
	assert.Equal(t, "req-9", inner.got.Header.Get(trace.HeaderRequestID))
}

func TestLoggingRoundTripper_KeepsExistingRequestID(t *testing.T) {
	inner := &recordingTransport{}
	rt := &loggingRoundTripper{inner: inner}

	req, err := http.NewRequest(http.MethodGet, "http://analysis.test/", nil)
	require.NoError(t, err)
	req.Header.Set(trace.HeaderRequestID, "req-1")

	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Same(t, req, inner.got)
}
