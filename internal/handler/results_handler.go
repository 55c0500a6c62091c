package handler

import (
	"github.com/gin-gonic/gin"

	"lexbrief/internal/domain"
	"lexbrief/internal/middleware"
	"lexbrief/internal/service"
)

// ResultsHandler handles the JSON results endpoints.
type ResultsHandler struct {
	resultsService service.ResultsService
}

// NewResultsHandler creates a new ResultsHandler.
func NewResultsHandler(resultsService service.ResultsService) *ResultsHandler {
	return &ResultsHandler{resultsService: resultsService}
}

// SectionText is the copy payload of one result section.
type SectionText struct {
	Section domain.Section `json:"section"`
	Text    string         `json:"text"`
}

// Current handles GET /api/v1/analyses/current
// @Summary Current analysis
// @Description Normalized analysis stored for this session
// @Tags analyses
// @Produce json
// @Success 200 {object} APIResponse{data=service.ResultView}
// @Failure 404 {object} ErrorResponseBody "No analysis in session"
// @Router /analyses/current [get]
func (h *ResultsHandler) Current(c *gin.Context) {
	view, err := h.resultsService.Current(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Discard handles DELETE /api/v1/analyses/current
// @Summary Analyze another document
// @Description Consumes the stored analysis and deletes the archived original
// @Tags analyses
// @Produce json
// @Success 200 {object} APIResponse{data=MessageData}
// @Router /analyses/current [delete]
func (h *ResultsHandler) Discard(c *gin.Context) {
	if err := h.resultsService.AnalyzeAnother(c.Request.Context(), middleware.GetSessionID(c)); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageData{Message: "analysis cleared"})
}

// Section handles GET /api/v1/analyses/current/sections/:section
// @Summary Copy a result section
// @Tags analyses
// @Produce json
// @Param section path string true "key_points, critical_clauses, recommendations or full_summary"
// @Success 200 {object} APIResponse{data=SectionText}
// @Failure 400 {object} ErrorResponseBody "Unknown section"
// @Failure 404 {object} ErrorResponseBody "No analysis in session"
// @Router /analyses/current/sections/{section} [get]
func (h *ResultsHandler) Section(c *gin.Context) {
	section, err := domain.ParseSection(c.Param("section"))
	if err != nil {
		HandleError(c, err)
		return
	}
	text, err := h.resultsService.Copy(c.Request.Context(), middleware.GetSessionID(c), section)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, SectionText{Section: section, Text: text})
}
