package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lexbrief/internal/domain"
	"lexbrief/internal/handler"
	"lexbrief/internal/service"
	"lexbrief/mocks"
)

const maxFileBytes = 10 * 1024 * 1024

func TestUploadHandler_Submit_Success(t *testing.T) {
	mockSvc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(mockSvc, maxFileBytes)

	mockSvc.On("Submit", mock.Anything, mock.MatchedBy(func(in service.SubmitInput) bool {
		return in.SessionID == testSession && in.Profile == "legal" && in.Header.Filename == "nda.pdf"
	})).Return(&service.SubmitResult{FileName: "nda.pdf", Profile: "legal", UploadedAt: time.Now()}, nil)

	body, ct := multipartBody("nda.pdf", []byte("%PDF-1.4"), map[string]string{"profile": "legal"})
	c, w := newContext(http.MethodPost, "/api/v1/analyses", body, ct)

	h.Submit(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestUploadHandler_Submit_NoFile(t *testing.T) {
	mockSvc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(mockSvc, maxFileBytes)

	c, w := newContext(http.MethodPost, "/api/v1/analyses", nil, "")

	h.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_FILE")
	mockSvc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestUploadHandler_Submit_BodyOverLimit(t *testing.T) {
	mockSvc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(mockSvc, 1024)

	body, ct := multipartBody("big.pdf", make([]byte, 2<<20), nil)
	c, w := newContext(http.MethodPost, "/api/v1/analyses", body, ct)

	h.Submit(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "The maximum size is 1KB.")
	mockSvc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestUploadHandler_Submit_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"unsupported", domain.ErrUnsupportedFileType, http.StatusBadRequest, "not supported"},
		{"too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "too large"},
		{"in flight", domain.ErrSubmissionInFlight, http.StatusConflict, "already being analyzed"},
		{"remote 422", &domain.RemoteError{Status: 422, Message: "not a legal document"}, http.StatusUnprocessableEntity, "not a legal document"},
		{"unreachable", domain.ErrRemoteUnavailable, http.StatusBadGateway, "check your connection"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(mocks.MockUploadService)
			h := handler.NewUploadHandler(mockSvc, maxFileBytes)
			mockSvc.On("Submit", mock.Anything, mock.Anything).Return(nil, tt.err)

			body, ct := multipartBody("a.pdf", []byte("x"), nil)
			c, w := newContext(http.MethodPost, "/api/v1/analyses", body, ct)

			h.Submit(c)

			assert.Equal(t, tt.status, w.Code)
			var resp handler.APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Error.Message, tt.msg)
		})
	}
}

func TestUploadHandler_Status(t *testing.T) {
	mockSvc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(mockSvc, maxFileBytes)
	mockSvc.On("Status", mock.Anything, testSession).Return(service.UploadStatus{Submitting: true, FileName: "a.pdf"}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/uploads/status", nil, "")
	h.Status(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"submitting":true`)
	assert.Contains(t, w.Body.String(), `"fileName":"a.pdf"`)
}

func TestUploadHandler_Status_TrackerFailure(t *testing.T) {
	mockSvc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(mockSvc, maxFileBytes)
	mockSvc.On("Status", mock.Anything, testSession).Return(service.UploadStatus{}, errors.New("redis down"))

	c, w := newContext(http.MethodGet, "/api/v1/uploads/status", nil, "")
	h.Status(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestUploadHandler_Reset(t *testing.T) {
	mockSvc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(mockSvc, maxFileBytes)
	mockSvc.On("Reset", mock.Anything, testSession).Return(nil)

	c, w := newContext(http.MethodPost, "/api/v1/uploads/reset", nil, "")
	h.Reset(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestUploadHandler_Profiles(t *testing.T) {
	mockSvc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(mockSvc, maxFileBytes)
	mockSvc.On("Profiles").Return([]domain.UploadProfile{
		{Name: "summarize", Path: "/summarize", AllowedExtensions: []string{"pdf", "docx", "txt"}},
	})

	c, w := newContext(http.MethodGet, "/api/v1/profiles", nil, "")
	h.Profiles(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"allowedExtensions":["pdf","docx","txt"]`)
}
