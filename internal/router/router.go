package router

import (
	"github.com/gin-gonic/gin"

	"lexbrief/internal/config"
	"lexbrief/internal/handler"
	"lexbrief/internal/middleware"
	"lexbrief/internal/web"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Page    *handler.PageHandler
	Upload  *handler.UploadHandler
	Results *handler.ResultsHandler
	Health  *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(web.Templates())

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	// Everything below is scoped to the browser session
	s := r.Group("")
	s.Use(middleware.Session(middleware.SessionOptions{
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.CookieSecure,
	}))

	// Pages
	s.GET("/", h.Page.Landing)
	s.GET("/upload", h.Page.UploadForm)
	s.POST("/upload", h.Page.UploadSubmit)
	s.POST("/upload/reset", h.Page.UploadReset)

	results := s.Group("/results")
	results.GET("", h.Page.Results)
	results.POST("/another", h.Page.AnalyzeAnother)
	results.POST("/copy/:section", h.Page.Copy)
	results.GET("/export.txt", h.Page.ExportText)
	results.GET("/export.csv", h.Page.ExportCSV)
	results.GET("/export.xlsx", h.Page.ExportWorkbook)
	results.GET("/export.docx", h.Page.ExportDocx)

	// JSON API
	v1 := s.Group("/api/v1")
	v1.GET("/profiles", h.Upload.Profiles)
	v1.POST("/analyses", h.Upload.Submit)
	v1.GET("/uploads/status", h.Upload.Status)
	v1.POST("/uploads/reset", h.Upload.Reset)

	analyses := v1.Group("/analyses/current")
	analyses.GET("", h.Results.Current)
	analyses.DELETE("", h.Results.Discard)
	analyses.GET("/sections/:section", h.Results.Section)

	return r
}
