package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moneyflow/pkg/logger"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTripNotFound),
		errors.Is(err, ErrActivityNotFound),
		errors.Is(err, ErrEditRequestNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidTripDate),
		errors.Is(err, ErrUnknownChange),
		errors.Is(err, ErrSessionKeyRequired):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotTripOwner),
		errors.Is(err, ErrNotTripMember),
		errors.Is(err, ErrNotTripEditor),
		errors.Is(err, ErrOwnerCannotRequest):
		RespondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrRequestAlreadyResolved):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrUnexpectedBehaviorOfAI):
		RespondError(c, http.StatusBadGateway, err.Error())
	case errors.Is(err, ErrDatabaseError):
		logger.Get().Error("database error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		logger.Get().Error("unhandled service error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
