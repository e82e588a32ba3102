package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/service"
)

// ImportHandler handles CSV ingestion of companies.
type ImportHandler struct {
	leads *service.LeadsService
}

// NewImportHandler wires a handler backed by the leads service.
func NewImportHandler(leads *service.LeadsService) *ImportHandler {
	return &ImportHandler{leads: leads}
}

// UploadCSV handles POST /api/companies/import requests.
func (h *ImportHandler) UploadCSV(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return Error(c, http.StatusBadRequest, "missing csv file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, http.StatusBadRequest, "unable to open file")
	}
	defer file.Close()

	summary, err := h.leads.ImportCSV(c.Request().Context(), file, actingUser(c))
	if err != nil {
		var validationErr service.CSVValidationError
		if errors.As(err, &validationErr) {
			return Error(c, http.StatusBadRequest, validationErr.Error())
		}
		return Error(c, http.StatusInternalServerError, "failed to process csv")
	}

	message := fmt.Sprintf("Imported %d of %d rows", summary.Results.Companies, summary.Rows)
	return Success(c, http.StatusOK, message, echo.Map{"rows": summary.Rows, "results": summary.Results})
}
