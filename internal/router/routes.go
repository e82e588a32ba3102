package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/auth"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/config"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/handler"
	middlewarepkg "github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth      *handler.AuthHandler
	Discovery *handler.DiscoveryHandler
	Saved     *handler.SavedHandler
	Campaigns *handler.CampaignsHandler
	Analytics *handler.AnalyticsHandler
	Import    *handler.ImportHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", echo.Map{"status": "ok"})
	})

	if handlers.Auth != nil {
		e.POST("/auth/register", handlers.Auth.Register)
		e.POST("/auth/login", handlers.Auth.Login)
	}

	api := e.Group("/api")
	if cfg.AuthRequired {
		api.Use(middlewarepkg.JWT(jwtManager))
	} else {
		api.Use(middlewarepkg.OptionalJWT(jwtManager))
	}

	discoveryLimit := middlewarepkg.RateLimiter(cfg.RateLimitDiscovery, "discovery")
	api.POST("/discovery/search", handlers.Discovery.Search, discoveryLimit)
	api.POST("/discovery/prompt", handlers.Discovery.PromptSearch, discoveryLimit)
	api.POST("/discovery/save-leads", handlers.Discovery.SaveLeads)

	api.GET("/saved-data", handlers.Saved.Overview)
	api.GET("/saved-companies", handlers.Saved.ListCompanies)
	api.POST("/saved-companies", handlers.Saved.SaveCompanies)
	api.DELETE("/saved-companies", handlers.Saved.DeleteCompanies)
	api.GET("/saved-contacts", handlers.Saved.ListContacts)
	api.POST("/saved-contacts", handlers.Saved.SaveContacts)
	api.DELETE("/saved-contacts", handlers.Saved.DeleteContacts)
	api.GET("/saved-vcs", handlers.Saved.ListVCs)
	api.POST("/saved-vcs", handlers.Saved.SaveVCs)
	api.DELETE("/saved-vcs", handlers.Saved.DeleteVCs)

	api.GET("/campaigns", handlers.Campaigns.List)
	api.POST("/campaigns", handlers.Campaigns.Create)
	api.POST("/campaigns/:id/send", handlers.Campaigns.Send)
	api.POST("/outreach/draft", handlers.Campaigns.Draft)

	api.GET("/analytics/dashboard", handlers.Analytics.Dashboard)

	if cfg.AuthRequired {
		api.POST("/companies/import", handlers.Import.UploadCSV, middlewarepkg.RequireRole("admin"))
	} else {
		api.POST("/companies/import", handlers.Import.UploadCSV)
	}
}
