package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/smart-insights/pkg/config"
)

// Router holds all handlers. A nil handler leaves its routes unregistered.
type Router struct {
	cfg            *config.Config
	service        string
	logger         *zap.Logger
	invoiceHandler *Invoice
	meetingHandler *Meeting
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, service string, logger *zap.Logger, invoiceHandler *Invoice, meetingHandler *Meeting) *Router {
	return &Router{
		cfg:            cfg,
		service:        service,
		logger:         logger,
		invoiceHandler: invoiceHandler,
		meetingHandler: meetingHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.HTTPErrorHandler = HTTPErrorHandler(rt.logger)

	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	if rt.invoiceHandler != nil {
		rt.setupInvoiceRoutes(v1)
		rt.setupAnalyticsRoutes(v1)
	}
	if rt.meetingHandler != nil {
		rt.setupMeetingRoutes(v1)
	}
}

// setupInvoiceRoutes configures invoice management routes
func (rt *Router) setupInvoiceRoutes(g *echo.Group) {
	invoiceGroup := g.Group("/invoices")

	invoiceGroup.POST("/upload", rt.invoiceHandler.Upload)
	invoiceGroup.POST("", rt.invoiceHandler.Create)
	invoiceGroup.GET("", rt.invoiceHandler.List)
	invoiceGroup.GET("/stats", rt.invoiceHandler.Stats)
	invoiceGroup.DELETE("/:id", rt.invoiceHandler.Delete)
}

// setupAnalyticsRoutes configures invoice analytics and report routes
func (rt *Router) setupAnalyticsRoutes(g *echo.Group) {
	analyticsGroup := g.Group("/analytics")

	analyticsGroup.GET("", rt.invoiceHandler.Analytics)
	analyticsGroup.GET("/chart.png", rt.invoiceHandler.AnalyticsChart)
	analyticsGroup.GET("/summary", rt.invoiceHandler.Summary)

	g.GET("/reports/analytics.pdf", rt.invoiceHandler.Report)
}

// setupMeetingRoutes configures transcript, search and insight routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings")

	meetingGroup.POST("/upload", rt.meetingHandler.Upload)
	meetingGroup.GET("/search/keyword", rt.meetingHandler.SearchByKeyword)
	meetingGroup.GET("/search/participant", rt.meetingHandler.SearchByParticipant)
	meetingGroup.GET("/analytics", rt.meetingHandler.Analytics)
	meetingGroup.GET("/:id/insights", rt.meetingHandler.GetInsights)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := ""
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"service":     rt.service,
		"environment": env,
		"time":        time.Now().UTC().Format(time.RFC3339),
	})
}
