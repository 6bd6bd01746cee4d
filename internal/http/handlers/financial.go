package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hearthstack/homescore-backend/internal/http/response"
	"github.com/hearthstack/homescore-backend/internal/platform/dbctx"
	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/repos"
	"github.com/hearthstack/homescore-backend/internal/services"
)

type FinancialHandler struct {
	log        *logger.Logger
	properties repos.PropertyRepo
	financial  services.FinancialService
}

func NewFinancialHandler(log *logger.Logger, properties repos.PropertyRepo, financial services.FinancialService) *FinancialHandler {
	return &FinancialHandler{
		log:        log.With("handler", "FinancialHandler"),
		properties: properties,
		financial:  financial,
	}
}

// GET /api/properties/:id/financial
func (h *FinancialHandler) GetFinancialReport(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return
	}

	dbc := dbctx.Context{Ctx: c.Request.Context()}
	prop, err := h.properties.GetOwned(dbc.Ctx, dbc.Tx, propertyID, userID)
	if err != nil {
		h.log.Error("GetFinancialReport failed (ownership)", "error", err, "property_id", propertyID)
		response.RespondError(c, http.StatusInternalServerError, "ownership_check_failed", err)
		return
	}
	if prop == nil {
		response.RespondError(c, http.StatusNotFound, "property_not_found", nil)
		return
	}

	report, err := h.financial.GetOrRecalculate(dbc, propertyID)
	if err != nil {
		h.log.Error("GetFinancialReport failed", "error", err, "property_id", propertyID)
		response.RespondAppError(c, "financial_report_failed", err)
		return
	}
	response.RespondOK(c, report)
}
