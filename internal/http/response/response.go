package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hearthstack/homescore-backend/internal/platform/apperr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// statusByKind is the single place error categories become transport
// codes. Handlers never switch on error text.
var statusByKind = map[apperr.Kind]int{
	apperr.KindNotFound:           http.StatusNotFound,
	apperr.KindInvalidInput:       http.StatusBadRequest,
	apperr.KindDataIncomplete:     http.StatusUnprocessableEntity,
	apperr.KindNoBenchmark:        http.StatusUnprocessableEntity,
	apperr.KindStaleQueued:        http.StatusAccepted,
	apperr.KindCalculationFailure: http.StatusInternalServerError,
	apperr.KindInternal:           http.StatusInternalServerError,
}

func StatusFor(err error) int {
	if status, ok := statusByKind[apperr.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAppError maps an error through the kind table.
func RespondAppError(c *gin.Context, code string, err error) {
	RespondError(c, StatusFor(err), code, err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondAccepted(c *gin.Context, payload any) {
	c.JSON(http.StatusAccepted, payload)
}
