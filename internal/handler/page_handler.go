package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lexbrief/internal/domain"
	"lexbrief/internal/middleware"
	"lexbrief/internal/service"
	"lexbrief/internal/web"
)

// PageHandler serves the server-rendered upload and results pages.
type PageHandler struct {
	uploadService  service.UploadService
	resultsService service.ResultsService
	defaultProfile string
	maxFileBytes   int64
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(
	uploadService service.UploadService,
	resultsService service.ResultsService,
	defaultProfile string,
	maxFileBytes int64,
) *PageHandler {
	return &PageHandler{
		uploadService:  uploadService,
		resultsService: resultsService,
		defaultProfile: defaultProfile,
		maxFileBytes:   maxFileBytes,
	}
}

// Landing handles GET /
func (h *PageHandler) Landing(c *gin.Context) {
	c.HTML(http.StatusOK, web.PageLanding, gin.H{})
}

// UploadForm handles GET /upload
func (h *PageHandler) UploadForm(c *gin.Context) {
	h.renderUpload(c, http.StatusOK, c.Query("profile"), "")
}

// UploadSubmit handles POST /upload. Failures re-render the form with the
// message inline; success redirects to the results page.
func (h *PageHandler) UploadSubmit(c *gin.Context) {
	input, cleanup, err := bindSubmitInput(c, h.maxFileBytes)
	if err != nil {
		h.uploadFailed(c, c.PostForm("profile"), err)
		return
	}
	defer cleanup()

	if _, err := h.uploadService.Submit(c.Request.Context(), input); err != nil {
		h.uploadFailed(c, input.Profile, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/results")
}

// UploadReset handles POST /upload/reset
func (h *PageHandler) UploadReset(c *gin.Context) {
	if err := h.uploadService.Reset(c.Request.Context(), middleware.GetSessionID(c)); err != nil {
		h.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/upload")
}

// Results handles GET /results. Without a readable analysis the visitor is
// sent back to the upload page.
func (h *PageHandler) Results(c *gin.Context) {
	view, err := h.resultsService.Current(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNoAnalysis) || errors.Is(err, domain.ErrCorruptAnalysis) {
			c.Redirect(http.StatusSeeOther, "/upload")
			return
		}
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, web.PageResults, gin.H{"PageTitle": "Results", "View": view})
}

// AnalyzeAnother handles POST /results/another
func (h *PageHandler) AnalyzeAnother(c *gin.Context) {
	if err := h.resultsService.AnalyzeAnother(c.Request.Context(), middleware.GetSessionID(c)); err != nil {
		h.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/upload")
}

// Copy handles POST /results/copy/:section and answers with the section text.
func (h *PageHandler) Copy(c *gin.Context) {
	section, err := domain.ParseSection(c.Param("section"))
	if err != nil {
		h.plainError(c, err)
		return
	}
	text, err := h.resultsService.Copy(c.Request.Context(), middleware.GetSessionID(c), section)
	if err != nil {
		h.plainError(c, err)
		return
	}
	c.String(http.StatusOK, text)
}

// ExportText handles GET /results/export.txt
func (h *PageHandler) ExportText(c *gin.Context) {
	h.sendExport(c, h.resultsService.ExportText)
}

// ExportCSV handles GET /results/export.csv
func (h *PageHandler) ExportCSV(c *gin.Context) {
	h.sendExport(c, h.resultsService.ExportCSV)
}

// ExportWorkbook handles GET /results/export.xlsx
func (h *PageHandler) ExportWorkbook(c *gin.Context) {
	h.sendExport(c, h.resultsService.ExportWorkbook)
}

// ExportDocx handles GET /results/export.docx. The service's bytes are
// streamed through unmodified.
func (h *PageHandler) ExportDocx(c *gin.Context) {
	stream, err := h.resultsService.ExportDocx(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.exportFailed(c, err)
		return
	}
	defer func() { _ = stream.Body.Close() }()

	c.Header("Content-Disposition", attachment(stream.FileName))
	if stream.ContentLength >= 0 {
		c.DataFromReader(http.StatusOK, stream.ContentLength, stream.ContentType, stream.Body, nil)
		return
	}
	c.Status(http.StatusOK)
	c.Header("Content-Type", stream.ContentType)
	_, _ = io.Copy(c.Writer, stream.Body)
}

type exportFunc func(ctx context.Context, sessionID string) (*service.Export, error)

func (h *PageHandler) sendExport(c *gin.Context, render exportFunc) {
	exp, err := render(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.exportFailed(c, err)
		return
	}
	c.Header("Content-Disposition", attachment(exp.FileName))
	c.Data(http.StatusOK, exp.ContentType, exp.Content)
}

// exportFailed sends visitors without an analysis back to the upload page.
func (h *PageHandler) exportFailed(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNoAnalysis) || errors.Is(err, domain.ErrCorruptAnalysis) {
		c.Redirect(http.StatusSeeOther, "/upload")
		return
	}
	h.renderError(c, err)
}

func (h *PageHandler) uploadFailed(c *gin.Context, profile string, err error) {
	status, _, msg := MapDomainError(err)
	logHandlerError(c, status, err)
	h.renderUpload(c, status, profile, msg)
}

func (h *PageHandler) renderUpload(c *gin.Context, code int, profile, errMsg string) {
	if profile == "" {
		profile = h.defaultProfile
	}
	status, err := h.uploadService.Status(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		logHandlerError(c, http.StatusInternalServerError, err)
	}
	c.HTML(code, web.PageUpload, gin.H{
		"PageTitle":       "Upload",
		"Profiles":        h.uploadService.Profiles(),
		"SelectedProfile": profile,
		"Error":           errMsg,
		"Status":          status,
		"MaxSize":         SizeLabel(h.maxFileBytes),
	})
}

func (h *PageHandler) renderError(c *gin.Context, err error) {
	status, _, msg := MapDomainError(err)
	logHandlerError(c, status, err)
	c.HTML(status, web.PageError, gin.H{"PageTitle": "Error", "Message": msg})
}

func (h *PageHandler) plainError(c *gin.Context, err error) {
	status, _, msg := MapDomainError(err)
	logHandlerError(c, status, err)
	c.String(status, msg)
}

func attachment(fileName string) string {
	return fmt.Sprintf("attachment; filename=%s", strconv.Quote(fileName))
}
