package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lexbrief/internal/domain"
	"lexbrief/internal/handler"
	"lexbrief/internal/service"
	"lexbrief/mocks"
)

func TestResultsHandler_Current(t *testing.T) {
	mockSvc := new(mocks.MockResultsService)
	h := handler.NewResultsHandler(mockSvc)
	mockSvc.On("Current", mock.Anything, testSession).Return(&service.ResultView{
		Analysis: domain.Analysis{Title: "Lease", KeyPoints: []string{"Rent"}},
	}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/analyses/current", nil, "")
	h.Current(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool               `json:"success"`
		Data    service.ResultView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Lease", resp.Data.Analysis.Title)
	assert.Equal(t, []string{"Rent"}, resp.Data.Analysis.KeyPoints)
}

func TestResultsHandler_Current_NoAnalysis(t *testing.T) {
	mockSvc := new(mocks.MockResultsService)
	h := handler.NewResultsHandler(mockSvc)
	mockSvc.On("Current", mock.Anything, testSession).Return(nil, domain.ErrNoAnalysis)

	c, w := newContext(http.MethodGet, "/api/v1/analyses/current", nil, "")
	h.Current(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NO_ANALYSIS")
}

func TestResultsHandler_Discard(t *testing.T) {
	mockSvc := new(mocks.MockResultsService)
	h := handler.NewResultsHandler(mockSvc)
	mockSvc.On("AnalyzeAnother", mock.Anything, testSession).Return(nil)

	c, w := newContext(http.MethodDelete, "/api/v1/analyses/current", nil, "")
	h.Discard(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestResultsHandler_Section(t *testing.T) {
	mockSvc := new(mocks.MockResultsService)
	h := handler.NewResultsHandler(mockSvc)
	mockSvc.On("Copy", mock.Anything, testSession, domain.SectionKeyPoints).Return("• a\n• b", nil)

	c, w := newContext(http.MethodGet, "/api/v1/analyses/current/sections/key-points", nil, "")
	c.Params = gin.Params{{Key: "section", Value: "key-points"}}
	h.Section(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data handler.SectionText `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.SectionKeyPoints, resp.Data.Section)
	assert.Equal(t, "• a\n• b", resp.Data.Text)
}

func TestResultsHandler_Section_Unknown(t *testing.T) {
	mockSvc := new(mocks.MockResultsService)
	h := handler.NewResultsHandler(mockSvc)

	c, w := newContext(http.MethodGet, "/api/v1/analyses/current/sections/appendix", nil, "")
	c.Params = gin.Params{{Key: "section", Value: "appendix"}}
	h.Section(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Copy", mock.Anything, mock.Anything, mock.Anything)
}
