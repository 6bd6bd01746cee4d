package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hearthstack/homescore-backend/internal/http/response"
	"github.com/hearthstack/homescore-backend/internal/platform/dbctx"
	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/repos"
	"github.com/hearthstack/homescore-backend/internal/services"
	"github.com/hearthstack/homescore-backend/internal/types"
)

type RiskHandler struct {
	log        *logger.Logger
	properties repos.PropertyRepo
	risk       services.RiskService
	jobs       services.JobService
}

func NewRiskHandler(log *logger.Logger, properties repos.PropertyRepo, risk services.RiskService, jobs services.JobService) *RiskHandler {
	return &RiskHandler{
		log:        log.With("handler", "RiskHandler"),
		properties: properties,
		risk:       risk,
		jobs:       jobs,
	}
}

// GET /api/properties/:id/risk
func (h *RiskHandler) GetRiskReport(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return
	}

	dbc := dbctx.Context{Ctx: c.Request.Context()}
	if !h.ownershipOK(c, dbc, propertyID, userID) {
		return
	}

	report, err := h.risk.GetOrRecalculate(dbc, propertyID)
	if err != nil {
		h.log.Error("GetRiskReport failed", "error", err, "property_id", propertyID)
		response.RespondAppError(c, "risk_report_failed", err)
		return
	}
	details, err := report.DecodeDetails()
	if err != nil {
		h.log.Error("GetRiskReport failed (decode details)", "error", err, "property_id", propertyID)
		response.RespondAppError(c, "risk_detail_decode_failed", err)
		return
	}
	response.RespondOK(c, gin.H{
		"report":  report,
		"details": details,
	})
}

// POST /api/properties/:id/risk/recalculate
func (h *RiskHandler) EnqueueRecalculate(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return
	}

	dbc := dbctx.Context{Ctx: c.Request.Context()}
	if !h.ownershipOK(c, dbc, propertyID, userID) {
		return
	}

	job, enqueued, err := h.jobs.Enqueue(dbc, propertyID, types.JobTypeRiskRecalculate, nil)
	if err != nil {
		h.log.Error("EnqueueRecalculate failed", "error", err, "property_id", propertyID)
		response.RespondAppError(c, "enqueue_failed", err)
		return
	}
	response.RespondAccepted(c, gin.H{
		"job_id":   job.ID,
		"status":   job.Status,
		"enqueued": enqueued,
	})
}

func (h *RiskHandler) ownershipOK(c *gin.Context, dbc dbctx.Context, propertyID, userID uuid.UUID) bool {
	prop, err := h.properties.GetOwned(dbc.Ctx, dbc.Tx, propertyID, userID)
	if err != nil {
		h.log.Error("Ownership check failed", "error", err, "property_id", propertyID)
		response.RespondError(c, http.StatusInternalServerError, "ownership_check_failed", err)
		return false
	}
	if prop == nil {
		response.RespondError(c, http.StatusNotFound, "property_not_found", nil)
		return false
	}
	return true
}
