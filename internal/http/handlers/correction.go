package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hearthstack/homescore-backend/internal/http/response"
	"github.com/hearthstack/homescore-backend/internal/platform/dbctx"
	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/services"
)

type CorrectionHandler struct {
	log         *logger.Logger
	corrections services.CorrectionService
	homescore   services.HomeScoreService
}

func NewCorrectionHandler(log *logger.Logger, corrections services.CorrectionService, homescore services.HomeScoreService) *CorrectionHandler {
	return &CorrectionHandler{
		log:         log.With("handler", "CorrectionHandler"),
		corrections: corrections,
		homescore:   homescore,
	}
}

type submitCorrectionBody struct {
	FieldKey      string `json:"field_key" binding:"required"`
	Title         string `json:"title"`
	Detail        string `json:"detail"`
	ProposedValue any    `json:"proposed_value"`
}

// POST /api/properties/:id/corrections
func (h *CorrectionHandler) SubmitCorrection(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return
	}

	var body submitCorrectionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	dbc := dbctx.Context{Ctx: c.Request.Context()}
	correction, err := h.corrections.Submit(dbc, services.SubmitCorrectionRequest{
		PropertyID:    propertyID,
		SubmittedBy:   userID,
		FieldKey:      body.FieldKey,
		Title:         body.Title,
		Detail:        body.Detail,
		ProposedValue: body.ProposedValue,
	})
	if err != nil {
		h.log.Error("SubmitCorrection failed", "error", err, "property_id", propertyID)
		response.RespondAppError(c, "correction_submit_failed", err)
		return
	}

	// A new ledger entry changes the composite change log.
	h.homescore.InvalidateCache(c.Request.Context(), propertyID)

	c.JSON(http.StatusCreated, correction)
}

// GET /api/properties/:id/corrections
func (h *CorrectionHandler) ListCorrections(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return
	}

	dbc := dbctx.Context{Ctx: c.Request.Context()}
	rows, err := h.corrections.List(dbc, userID, propertyID)
	if err != nil {
		h.log.Error("ListCorrections failed", "error", err, "property_id", propertyID)
		response.RespondAppError(c, "correction_list_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"corrections": rows})
}
