package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/middleware"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/repository"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/service"
)

// CampaignsHandler exposes campaign management and bulk sending.
type CampaignsHandler struct {
	campaigns *service.CampaignsService
	source    string
	log       *zap.Logger
}

// NewCampaignsHandler constructs a CampaignsHandler. source labels live
// responses, e.g. "database" or "memory".
func NewCampaignsHandler(campaigns *service.CampaignsService, source string, log *zap.Logger) *CampaignsHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CampaignsHandler{campaigns: campaigns, source: source, log: log}
}

// List handles GET /api/campaigns.
func (h *CampaignsHandler) List(c echo.Context) error {
	if isDemo(c) {
		views := service.DemoCampaigns()
		return Success(c, http.StatusOK, "", echo.Map{"campaigns": views, "count": len(views), "source": "demo"})
	}

	views, err := h.campaigns.List(c.Request().Context())
	if err != nil {
		middleware.Logger(c, h.log).Error("list campaigns failed", zap.Error(err))
		return Error(c, http.StatusInternalServerError, "Failed to fetch campaigns")
	}
	return Success(c, http.StatusOK, "", echo.Map{"campaigns": views, "count": len(views), "source": h.source})
}

// Create handles POST /api/campaigns.
func (h *CampaignsHandler) Create(c echo.Context) error {
	var req dto.CreateCampaignRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	campaign, err := h.campaigns.Create(c.Request().Context(), req)
	if err != nil {
		var vErr service.ValidationError
		if errors.As(err, &vErr) {
			return Error(c, http.StatusBadRequest, vErr.Message)
		}
		middleware.Logger(c, h.log).Error("create campaign failed", zap.Error(err))
		return Error(c, http.StatusInternalServerError, "Failed to create campaign")
	}

	message := fmt.Sprintf("Created %q campaign successfully", campaign.Name)
	return Success(c, http.StatusCreated, message, echo.Map{"campaign": dto.NewCampaignView(*campaign), "source": h.source})
}

// Send handles POST /api/campaigns/:id/send.
func (h *CampaignsHandler) Send(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid campaign id")
	}
	var req dto.SendCampaignRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	summary, campaign, err := h.campaigns.Send(c.Request().Context(), id, parseIDs(req.ContactIDs))
	if err != nil {
		var vErr service.ValidationError
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return Error(c, http.StatusNotFound, "Campaign not found")
		case errors.As(err, &vErr):
			return Error(c, http.StatusBadRequest, vErr.Message)
		}
		middleware.Logger(c, h.log).Error("send campaign failed", zap.String("campaign_id", id.String()), zap.Error(err))
		return Error(c, http.StatusInternalServerError, "Failed to send campaign")
	}

	body := echo.Map{"results": summary, "mode": h.campaigns.MailMode()}
	if campaign != nil {
		body["campaign"] = dto.NewCampaignView(*campaign)
	}
	message := fmt.Sprintf("Sent %d emails, %d failed, %d skipped", summary.Sent, summary.Failed, summary.Skipped)
	return Success(c, http.StatusOK, message, body)
}

// Draft handles POST /api/outreach/draft.
func (h *CampaignsHandler) Draft(c echo.Context) error {
	var req dto.DraftOutreachRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	draft, err := h.campaigns.DraftOutreach(c.Request().Context(), uuid.MustParse(req.ContactID))
	if err != nil {
		var vErr service.ValidationError
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return Error(c, http.StatusNotFound, "Contact not found")
		case errors.As(err, &vErr):
			return Error(c, http.StatusBadRequest, vErr.Message)
		}
		middleware.Logger(c, h.log).Error("draft outreach failed", zap.String("contact_id", req.ContactID), zap.Error(err))
		return Error(c, http.StatusInternalServerError, "Failed to draft outreach email")
	}
	return Success(c, http.StatusOK, "", echo.Map{"draft": draft})
}
