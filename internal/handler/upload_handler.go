package handler

import (
	"github.com/gin-gonic/gin"

	"lexbrief/internal/middleware"
	"lexbrief/internal/service"
)

// UploadHandler handles the JSON upload endpoints.
type UploadHandler struct {
	uploadService service.UploadService
	maxFileBytes  int64
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploadService service.UploadService, maxFileBytes int64) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, maxFileBytes: maxFileBytes}
}

// Submit handles POST /api/v1/analyses
// @Summary Analyze a document
// @Description Upload one document (default ceiling 10MB) and store its analysis in the session
// @Tags analyses
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document to analyze"
// @Param profile formData string false "Upload profile (summarize or legal)"
// @Success 201 {object} APIResponse{data=service.SubmitResult} "Analysis stored"
// @Failure 400 {object} ErrorResponseBody "Missing file, unsupported type or unknown profile"
// @Failure 409 {object} ErrorResponseBody "Submission already in flight or reset"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 502 {object} ErrorResponseBody "Analysis service unreachable or failed"
// @Router /analyses [post]
func (h *UploadHandler) Submit(c *gin.Context) {
	input, cleanup, err := bindSubmitInput(c, h.maxFileBytes)
	if err != nil {
		HandleError(c, err)
		return
	}
	defer cleanup()

	result, err := h.uploadService.Submit(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// Status handles GET /api/v1/uploads/status
// @Summary Session upload status
// @Tags uploads
// @Produce json
// @Success 200 {object} APIResponse{data=service.UploadStatus}
// @Failure 500 {object} ErrorResponseBody
// @Router /uploads/status [get]
func (h *UploadHandler) Status(c *gin.Context) {
	status, err := h.uploadService.Status(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, status)
}

// Reset handles POST /api/v1/uploads/reset
// @Summary Abandon the current upload
// @Description Stops tracking an in-flight submission and clears the stored analysis. The remote request is not cancelled.
// @Tags uploads
// @Produce json
// @Success 200 {object} APIResponse{data=MessageData}
// @Router /uploads/reset [post]
func (h *UploadHandler) Reset(c *gin.Context) {
	if err := h.uploadService.Reset(c.Request.Context(), middleware.GetSessionID(c)); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageData{Message: "upload reset"})
}

// Profiles handles GET /api/v1/profiles
// @Summary List upload profiles
// @Tags uploads
// @Produce json
// @Success 200 {object} APIResponse{data=[]domain.UploadProfile}
// @Router /profiles [get]
func (h *UploadHandler) Profiles(c *gin.Context) {
	RespondOK(c, h.uploadService.Profiles())
}
