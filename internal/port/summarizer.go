package port

import (
	"context"
	"io"

	"lexbrief/internal/domain"
)

// FileInput is a document ready to be sent to the analysis service.
type FileInput struct {
	FileName    string
	ContentType string
	Content     []byte
}

// DocxStream is a DOCX download relayed unmodified from the analysis service.
// The caller must close Body.
type DocxStream struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
	FileName      string
}

// Summarizer is the external analysis service.
type Summarizer interface {
	// Summarize posts the document to the profile's path and returns the
	// decoded JSON object.
	Summarize(ctx context.Context, profile domain.UploadProfile, file FileInput) (map[string]interface{}, error)
	// SummarizeDocx posts the document to /summarize/docx.
	SummarizeDocx(ctx context.Context, file FileInput) (*DocxStream, error)
	Ping(ctx context.Context) error
}
