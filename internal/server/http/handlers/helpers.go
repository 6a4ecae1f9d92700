package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/klarnapay/internal/adapter/klarna"
	domainErrors "github.com/polkiloo/klarnapay/internal/domain/errors"
	"github.com/polkiloo/klarnapay/internal/server/http/dto"
)

// IdempotencyKeyHeader lets admin callers pin refund and capture keys.
const IdempotencyKeyHeader = "Idempotency-Key"

func pathOrderID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid order id"})
		return 0, false
	}
	return id, true
}

// errorStatus maps domain and Klarna errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrInvalidAmount), errors.Is(err, domainErrors.ErrNonKlarnaOrder):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrFraudValidation):
		return http.StatusPaymentRequired
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	case klarna.IsAPIError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		c.AbortWithStatus(status)
		return
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: err.Error()})
}
