package summarizer_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexbrief/internal/domain"
	"lexbrief/internal/port"
	"lexbrief/internal/summarizer"
	"lexbrief/internal/trace"
)

func pdfInput() port.FileInput {
	return port.FileInput{
		FileName:    "contract.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF-1.4 contract body"),
	}
}

var summarizeProfile = domain.UploadProfile{Name: "summarize", Path: "/summarize", AllowedExtensions: []string{"pdf"}}
var legalProfile = domain.UploadProfile{Name: "legal", Path: "/upload/", AllowedExtensions: []string{"pdf"}}

func TestClient_Summarize_PostsMultipartFile(t *testing.T) {
	var gotPath, gotRequestID, gotFileName string
	var gotContent []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get(trace.HeaderRequestID)
		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		gotFileName = header.Filename
		gotContent, _ = io.ReadAll(f)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"full_summary": "ok", "key_points": ["a"]}`))
	}))
	defer srv.Close()

	client := summarizer.NewClientWithHTTP(srv.URL, nil)
	ctx := trace.WithRequestID(context.Background(), "req-123")

	out, err := client.Summarize(ctx, summarizeProfile, pdfInput())
	require.NoError(t, err)

	assert.Equal(t, "/summarize", gotPath)
	assert.Equal(t, "req-123", gotRequestID)
	assert.Equal(t, "contract.pdf", gotFileName)
	assert.Equal(t, []byte("%PDF-1.4 contract body"), gotContent)
	assert.Equal(t, "ok", out["full_summary"])
}

func TestClient_Summarize_ForwardsRequestIDWithCustomHTTPClient(t *testing.T) {
	var gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get(trace.HeaderRequestID)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := summarizer.NewClientWithHTTP(srv.URL, srv.Client())
	_, err := client.Summarize(trace.WithRequestID(context.Background(), "req-77"), summarizeProfile, pdfInput())

	require.NoError(t, err)
	assert.Equal(t, "req-77", gotRequestID)
}

func TestClient_Summarize_KeepsTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := summarizer.NewClientWithHTTP(srv.URL+"/api/", nil)
	_, err := client.Summarize(context.Background(), legalProfile, pdfInput())
	require.NoError(t, err)
	assert.Equal(t, "/api/upload/", gotPath)
}

func TestClient_Summarize_RemoteErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"detail string", http.StatusUnprocessableEntity, `{"detail": "not a legal document"}`, "not a legal document"},
		{"detail object", http.StatusBadRequest, `{"detail": {"message": "Unsupported format", "code": 1}}`, "Unsupported format"},
		{"detail validation list", http.StatusUnprocessableEntity, `{"detail": [{"loc": ["body", "file"], "msg": "field required"}]}`, "field required"},
		{"empty detail", http.StatusUnprocessableEntity, `{"detail": ""}`, summarizer.GenericMessage(http.StatusUnprocessableEntity)},
		{"not json", http.StatusBadRequest, `<html>bad</html>`, summarizer.GenericMessage(http.StatusBadRequest)},
		{"server error", http.StatusInternalServerError, ``, summarizer.GenericMessage(http.StatusInternalServerError)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := summarizer.NewClientWithHTTP(srv.URL, nil)
			out, err := client.Summarize(context.Background(), legalProfile, pdfInput())

			assert.Nil(t, out)
			re, ok := domain.AsRemoteError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, re.Status)
			assert.Equal(t, tt.wantMsg, re.Message)
		})
	}
}

func TestClient_Summarize_UnreadableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["not", "an", "object"]`))
	}))
	defer srv.Close()

	client := summarizer.NewClientWithHTTP(srv.URL, nil)
	_, err := client.Summarize(context.Background(), summarizeProfile, pdfInput())

	re, ok := domain.AsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, re.Status)
}

func TestClient_Summarize_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := summarizer.NewClientWithHTTP(url, nil)
	_, err := client.Summarize(context.Background(), summarizeProfile, pdfInput())
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
}

func TestClient_SummarizeDocx_PassesBodyThrough(t *testing.T) {
	docx := []byte("PK\x03\x04 docx bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/summarize/docx", r.URL.Path)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
		w.Header().Set("Content-Disposition", `attachment; filename="contract_summary.docx"`)
		_, _ = w.Write(docx)
	}))
	defer srv.Close()

	client := summarizer.NewClientWithHTTP(srv.URL, nil)
	stream, err := client.SummarizeDocx(context.Background(), pdfInput())
	require.NoError(t, err)
	defer stream.Body.Close()

	got, err := io.ReadAll(stream.Body)
	require.NoError(t, err)
	assert.Equal(t, docx, got)
	assert.Equal(t, "contract_summary.docx", stream.FileName)
}

func TestClient_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	client := summarizer.NewClientWithHTTP(srv.URL, nil)
	assert.NoError(t, client.Ping(context.Background()))

	srv.Close()
	assert.ErrorIs(t, client.Ping(context.Background()), domain.ErrRemoteUnavailable)
}
