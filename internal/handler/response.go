package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"lexbrief/internal/domain"
	"lexbrief/internal/logger"
	"lexbrief/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// RemoteUnavailableMessage is shown when the analysis service cannot be reached at all.
const RemoteUnavailableMessage = "Unable to reach the analysis service. Please check your connection and try again."

// MapDomainError translates domain errors to HTTP status codes, error codes
// and user-facing messages.
func MapDomainError(err error) (status int, code, msg string) {
	if re, ok := domain.AsRemoteError(err); ok {
		if re.Status >= 400 && re.Status < 500 {
			return re.Status, "ANALYSIS_REJECTED", re.Message
		}
		return http.StatusBadGateway, "ANALYSIS_FAILED", re.Message
	}

	switch {
	case errors.Is(err, domain.ErrMissingFile):
		return http.StatusBadRequest, "MISSING_FILE", "Please select a file to upload."
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "This file type is not supported for the selected analysis."
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", tooLargeMessage(err)
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return http.StatusConflict, "SUBMISSION_IN_FLIGHT", "A document is already being analyzed. Please wait for it to finish."
	case errors.Is(err, domain.ErrSubmissionAbandoned):
		return http.StatusConflict, "SUBMISSION_ABANDONED", "The upload was cancelled before the analysis finished."
	case errors.Is(err, domain.ErrNoAnalysis):
		return http.StatusNotFound, "NO_ANALYSIS", "No analysis found. Please upload a document first."
	case errors.Is(err, domain.ErrCorruptAnalysis):
		return http.StatusNotFound, "CORRUPT_ANALYSIS", "The stored analysis could not be read. Please upload the document again."
	case errors.Is(err, domain.ErrUnknownProfile):
		return http.StatusBadRequest, "UNKNOWN_PROFILE", "Unknown analysis type."
	case errors.Is(err, domain.ErrUnknownSection):
		return http.StatusBadRequest, "UNKNOWN_SECTION", "Unknown result section."
	case errors.Is(err, domain.ErrArchiveUnavailable):
		return http.StatusNotFound, "ARCHIVE_UNAVAILABLE", "The original document is no longer available for this export."
	case errors.Is(err, domain.ErrRemoteUnavailable):
		return http.StatusBadGateway, "REMOTE_UNAVAILABLE", RemoteUnavailableMessage
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred. Please try again."
	}
}

func tooLargeMessage(err error) string {
	var tooLarge *domain.FileTooLargeError
	if errors.As(err, &tooLarge) && tooLarge.MaxBytes > 0 {
		return fmt.Sprintf("File is too large. The maximum size is %s.", SizeLabel(tooLarge.MaxBytes))
	}
	return "File is too large."
}

// SizeLabel formats an upload ceiling: 10485760 is "10MB", 524288 is "512KB".
func SizeLabel(n int64) string {
	const kb, mb = 1024, 1024 * 1024
	switch {
	case n >= mb && n%mb == 0:
		return fmt.Sprintf("%dMB", n/mb)
	case n >= kb && n%kb == 0:
		return fmt.Sprintf("%dKB", n/kb)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	logHandlerError(c, status, err)
	RespondError(c, status, code, msg)
}

func logHandlerError(c *gin.Context, status int, err error) {
	if status < 500 {
		return
	}
	logger.ErrorWithFields("request failed", logger.Fields{
		"request_id": c.GetString(middleware.ContextKeyRequestID),
		"path":       c.Request.URL.Path,
		"status":     status,
		"error":      err.Error(),
	})
}
