package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "user-profile-api/internal/domain/user"
	"user-profile-api/internal/interface/api/rest/validator"
)

const (
	msgInternal    = "Internal error"
	msgInvalidBody = "invalid request body"
	msgInvalidID   = "user_id: must be a valid UUID"
)

// ResponseData is the envelope of every API answer. Exactly one field is set.
type ResponseData struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, ResponseData{Data: data})
}

func respondMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, ResponseData{Error: msg})
}

// respondError maps validation and business failures to client statuses. Anything
// else is logged and answered with a generic message.
func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	var fe *validator.FieldError
	if errors.As(err, &fe) {
		respondMessage(c, http.StatusBadRequest, fe.Error())
		return
	}

	if berr, ok := domain.AsBusinessError(err); ok {
		respondMessage(c, statusOf(berr.Kind), berr.Message)
		return
	}

	logger.Error(op+"() error", zap.Error(err))
	respondMessage(c, http.StatusInternalServerError, msgInternal)
}

func statusOf(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindDuplicateEmail:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
