package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/discovery"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/middleware"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/service"
)

// DiscoveryHandler exposes lead search and persistence.
type DiscoveryHandler struct {
	discovery *discovery.Service
	leads     *service.LeadsService
	prompt    *service.PromptService
	log       *zap.Logger
}

// NewDiscoveryHandler constructs a DiscoveryHandler.
func NewDiscoveryHandler(d *discovery.Service, leads *service.LeadsService, prompt *service.PromptService, log *zap.Logger) *DiscoveryHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &DiscoveryHandler{discovery: d, leads: leads, prompt: prompt, log: log}
}

// Search handles POST /api/discovery/search.
func (h *DiscoveryHandler) Search(c echo.Context) error {
	var req dto.SearchRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	return h.run(c, req, nil)
}

// PromptSearch handles POST /api/discovery/prompt.
func (h *DiscoveryHandler) PromptSearch(c echo.Context) error {
	var req dto.PromptSearchRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	criteria, err := h.prompt.Parse(req)
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}
	return h.run(c, criteria, echo.Map{"criteria": criteria})
}

func (h *DiscoveryHandler) run(c echo.Context, req dto.SearchRequest, extra echo.Map) error {
	resp, err := h.discovery.Search(c.Request().Context(), req)
	if err != nil {
		middleware.Logger(c, h.log).Error("discovery search failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success":    false,
			"error":      "Lead discovery failed",
			"message":    err.Error(),
			"results":    []dto.Lead{},
			"totalCount": 0,
		})
	}

	body := echo.Map{
		"results":    resp.Results,
		"totalCount": resp.TotalCount,
		"source":     resp.Source,
	}
	if len(resp.VCs) > 0 {
		body["vcs"] = resp.VCs
	}
	if len(resp.Warnings) > 0 {
		body["warnings"] = resp.Warnings
	}
	for k, v := range extra {
		body[k] = v
	}
	return Success(c, http.StatusOK, resp.Message, body)
}

// SaveLeads handles POST /api/discovery/save-leads.
func (h *DiscoveryHandler) SaveLeads(c echo.Context) error {
	var req dto.SaveLeadsRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	summary, err := h.leads.SaveLeads(c.Request().Context(), req.Leads, actingUser(c))
	if err != nil {
		middleware.Logger(c, h.log).Error("save leads failed", zap.Error(err))
		return Error(c, http.StatusInternalServerError, "Failed to save leads")
	}

	message := fmt.Sprintf("Saved %d companies and %d contacts", summary.Companies, summary.Contacts)
	return Success(c, http.StatusOK, message, echo.Map{"results": summary})
}
