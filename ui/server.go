package ui

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"termdeposit/adapters/artifacts"
	"termdeposit/domain/client"
	"termdeposit/internal"
	"termdeposit/internal/api"
)

// Server represents the web server for the prediction form
type Server struct {
	router    *gin.Engine
	templates *template.Template
	predictor api.Predictor
	summary   artifacts.Summary
	logger    *internal.Logger

	// rationale is the sample's Markdown rationale rendered once to sanitized HTML.
	rationale template.HTML
}

// NewServer parses the templates and wires routes. apiHandler, when non-nil, is
// mounted under /api.
func NewServer(predictor api.Predictor, apiHandler http.Handler, summary artifacts.Summary, logger *internal.Logger) (*Server, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.New(),
		templates: templates,
		predictor: predictor,
		summary:   summary,
		logger:    logger,
		rationale: renderMarkdown(client.LikelyRationale, bluemonday.UGCPolicy()),
	}
	s.setupMiddleware()
	s.setupRoutes(apiHandler)
	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes(apiHandler http.Handler) {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/predict", s.handlePredict)
	s.router.POST("/sample", s.handleSample)
	s.router.GET("/healthz", s.handleHealth)

	if apiHandler != nil {
		s.router.Any("/api/*path", gin.WrapH(apiHandler))
	}
}

// Handler exposes the router for an http.Server or tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
