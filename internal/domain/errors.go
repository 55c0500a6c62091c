package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFile         = errors.New("file field is required")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrSubmissionInFlight  = errors.New("a document is already being analyzed")
	ErrSubmissionAbandoned = errors.New("submission was reset before it completed")
	ErrUnknownProfile      = errors.New("unknown upload profile")
	ErrUnknownSection      = errors.New("unknown result section")
	ErrNoAnalysis          = errors.New("no analysis in session")
	ErrCorruptAnalysis     = errors.New("stored analysis could not be decoded")
	ErrArchiveUnavailable  = errors.New("original document is not available")
	ErrRemoteUnavailable   = errors.New("analysis service unreachable")
)

// RemoteError is a non-2xx answer from the analysis service. Message is the
// user-facing text extracted from the response body, or a generic fallback.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("analysis service returned %d: %s", e.Status, e.Message)
}

// AsRemoteError unwraps err into a *RemoteError when possible.
func AsRemoteError(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// FileTooLargeError is ErrFileTooLarge carrying the configured ceiling.
type FileTooLargeError struct {
	MaxBytes int64
}

// NewFileTooLargeError reports a file over maxBytes.
func NewFileTooLargeError(maxBytes int64) error {
	return &FileTooLargeError{MaxBytes: maxBytes}
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s (limit %d bytes)", ErrFileTooLarge, e.MaxBytes)
}

func (e *FileTooLargeError) Unwrap() error {
	return ErrFileTooLarge
}
