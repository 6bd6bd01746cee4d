package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/hearthstack/homescore-backend/internal/http/response"
	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/services"
)

type HomeScoreHandler struct {
	log       *logger.Logger
	homescore services.HomeScoreService
}

func NewHomeScoreHandler(log *logger.Logger, homescore services.HomeScoreService) *HomeScoreHandler {
	return &HomeScoreHandler{
		log:       log.With("handler", "HomeScoreHandler"),
		homescore: homescore,
	}
}

// GET /api/properties/:id/homescore
func (h *HomeScoreHandler) GetHomeScore(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return
	}

	report, err := h.homescore.BuildReport(c.Request.Context(), userID, propertyID)
	if err != nil {
		h.log.Error("GetHomeScore failed", "error", err, "property_id", propertyID)
		response.RespondAppError(c, "homescore_build_failed", err)
		return
	}
	response.RespondOK(c, report)
}
