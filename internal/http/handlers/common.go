package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hearthstack/homescore-backend/internal/http/response"
)

// requesterID pulls the caller identity set by the gateway. The service
// has no auth of its own; the X-User-ID header is trusted upstream input.
func requesterID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetHeader("X-User-ID")
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "missing_user_identity", err)
		return uuid.Nil, false
	}
	return id, true
}

func propertyIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil || id == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_property_id", err)
		return uuid.Nil, false
	}
	return id, true
}
