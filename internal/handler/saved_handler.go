package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/middleware"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/service"
)

// SavedHandler exposes the saved-companies, saved-contacts and saved-vcs resources.
type SavedHandler struct {
	saved *service.SavedService
	log   *zap.Logger
}

// NewSavedHandler constructs a SavedHandler.
func NewSavedHandler(saved *service.SavedService, log *zap.Logger) *SavedHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &SavedHandler{saved: saved, log: log}
}

// Overview handles GET /api/saved-data.
func (h *SavedHandler) Overview(c echo.Context) error {
	overview, err := h.saved.Overview(c.Request().Context())
	if err != nil {
		middleware.Logger(c, h.log).Error("load saved data failed", zap.Error(err))
		return Error(c, http.StatusInternalServerError, "Failed to fetch saved data")
	}
	companies, contacts, vcs := len(overview.Companies), len(overview.Contacts), len(overview.VCs)
	return Success(c, http.StatusOK, "", echo.Map{
		"data": echo.Map{
			"companies": echo.Map{"items": overview.Companies, "count": companies},
			"contacts":  echo.Map{"items": overview.Contacts, "count": contacts},
			"vcs":       echo.Map{"items": overview.VCs, "count": vcs},
		},
		"totals": echo.Map{
			"companies": companies,
			"contacts":  contacts,
			"vcs":       vcs,
			"all":       companies + contacts + vcs,
		},
	})
}

// ListCompanies handles GET /api/saved-companies.
func (h *SavedHandler) ListCompanies(c echo.Context) error {
	companies, err := h.saved.ListCompanies(c.Request().Context())
	if err != nil {
		middleware.Logger(c, h.log).Error("list saved companies failed", zap.Error(err))
		return Error(c, http.StatusInternalServerError, "Failed to fetch saved companies")
	}
	return Success(c, http.StatusOK, "", echo.Map{"companies": companies, "total": len(companies)})
}

// SaveCompanies handles POST /api/saved-companies.
func (h *SavedHandler) SaveCompanies(c echo.Context) error {
	var req dto.SaveCompaniesRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	summary := h.saved.SaveCompanies(c.Request().Context(), req.Companies, actingUser(c))
	return Success(c, http.StatusOK, fmt.Sprintf("Saved %d companies", summary.Companies), echo.Map{"results": summary})
}

// DeleteCompanies handles DELETE /api/saved-companies.
func (h *SavedHandler) DeleteCompanies(c echo.Context) error {
	var req dto.DeleteSavedRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	deleted, err := h.saved.DeleteCompanies(c.Request().Context(), parseIDs(req.IDs))
	if err != nil {
		middleware.Logger(c, h.log).Error("delete saved companies failed", zap.Error(err))
		return Error(c, http.StatusInternalServerError, "Failed to remove companies")
	}
	return Success(c, http.StatusOK, fmt.Sprintf("Removed %d companies", deleted), echo.Map{"deleted": deleted})
}

// ListContacts handles GET /api/saved-contacts.
func (h *SavedHandler) ListContacts(c echo.Context) error {
	contacts, err := h.saved.ListContacts(c.Request().Context())
	if err != nil {
		middleware.Logger(c, h.log).Error("list saved contacts failed", zap.Error(err))
		return Error(c, http.StatusInternalServerError, "Failed to fetch saved contacts")
	}
	return Success(c, http.StatusOK, "", echo.Map{"contacts": contacts, "total": len(contacts)})
}

// SaveContacts handles POST /api/saved-contacts.
func (h *SavedHandler) SaveContacts(c echo.Context) error {
	var req dto.SaveContactsRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	summary := h.saved.SaveContacts(c.Request().Context(), req.Contacts, actingUser(c))
	return Success(c, http.StatusOK, fmt.Sprintf("Saved %d contacts", summary.Contacts), echo.Map{"results": summary})
}

// DeleteContacts handles DELETE /api/saved-contacts.
func (h *SavedHandler) DeleteContacts(c echo.Context) error {
	var req dto.DeleteSavedRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	deleted, err := h.saved.DeleteContacts(c.Request().Context(), parseIDs(req.IDs))
	if err != nil {
		middleware.Logger(c, h.log).Error("delete saved contacts failed", zap.Error(err))
		return Error(c, http.StatusInternalServerError, "Failed to remove contacts")
	}
	return Success(c, http.StatusOK, fmt.Sprintf("Removed %d contacts", deleted), echo.Map{"deleted": deleted})
}

// ListVCs handles GET /api/saved-vcs.
func (h *SavedHandler) ListVCs(c echo.Context) error {
	vcs, err := h.saved.ListVCs(c.Request().Context())
	if err != nil {
		middleware.Logger(c, h.log).Error("list saved vcs failed", zap.Error(err))
		return Error(c, http.StatusInternalServerError, "Failed to fetch saved VCs")
	}
	return Success(c, http.StatusOK, "", echo.Map{"vcs": vcs, "total": len(vcs)})
}

// SaveVCs handles POST /api/saved-vcs.
func (h *SavedHandler) SaveVCs(c echo.Context) error {
	var req dto.SaveVCsRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	summary := h.saved.SaveVCs(c.Request().Context(), req.VCs, actingUser(c))
	return Success(c, http.StatusOK, fmt.Sprintf("Saved %d VCs/Investors", summary.Contacts), echo.Map{"results": summary})
}

// DeleteVCs handles DELETE /api/saved-vcs.
func (h *SavedHandler) DeleteVCs(c echo.Context) error {
	var req dto.DeleteSavedRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	deleted, err := h.saved.DeleteVCs(c.Request().Context(), parseIDs(req.IDs))
	if err != nil {
		middleware.Logger(c, h.log).Error("delete saved vcs failed", zap.Error(err))
		return Error(c, http.StatusInternalServerError, "Failed to remove VCs")
	}
	return Success(c, http.StatusOK, fmt.Sprintf("Removed %d VCs", deleted), echo.Map{"deleted": deleted})
}
