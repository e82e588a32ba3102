package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/middleware"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/service"
)

// AnalyticsHandler serves the dashboard aggregates.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	source    string
	log       *zap.Logger
}

// NewAnalyticsHandler constructs an AnalyticsHandler.
func NewAnalyticsHandler(analytics *service.AnalyticsService, source string, log *zap.Logger) *AnalyticsHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AnalyticsHandler{analytics: analytics, source: source, log: log}
}

// Dashboard handles GET /api/analytics/dashboard.
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	if isDemo(c) {
		dash := service.DemoDashboard()
		return Success(c, http.StatusOK, "", echo.Map{"stats": dash.Stats, "charts": dash.Charts, "source": "demo"})
	}

	dash, err := h.analytics.Dashboard(c.Request().Context())
	if err != nil {
		middleware.Logger(c, h.log).Error("dashboard aggregation failed", zap.Error(err))
		return Error(c, http.StatusInternalServerError, "Failed to fetch dashboard data")
	}
	return Success(c, http.StatusOK, "", echo.Map{"stats": dash.Stats, "charts": dash.Charts, "source": h.source})
}
