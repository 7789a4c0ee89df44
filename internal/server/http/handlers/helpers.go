package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openlodge/clubadmin/internal/adapter/payment"
	domainErrors "github.com/openlodge/clubadmin/internal/domain/errors"
	"github.com/openlodge/clubadmin/internal/pkg/auth"
	"github.com/openlodge/clubadmin/internal/server/http/dto"
	"github.com/openlodge/clubadmin/internal/server/http/middleware"
)

// CurrentClaims extracts the authenticated identity from context.
func CurrentClaims(c *gin.Context) auth.Claims {
	val, ok := c.Get(middleware.ClaimsContextKey)
	if !ok {
		return auth.Claims{}
	}
	claims, _ := val.(auth.Claims)
	return claims
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}

func pathUUID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func parseAmount(c *gin.Context, raw string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "invalid amount"})
		return decimal.Decimal{}, false
	}
	return amount, true
}

// respondError maps domain sentinels onto HTTP statuses. Unknown
// errors become a plain 500 without leaking details.
func respondError(c *gin.Context, err error) {
	var tooMany payment.TooManyRequestsError
	var gateway payment.GatewayError

	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not found"})
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "already exists"})
	case errors.Is(err, domainErrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "forbidden"})
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid credentials"})
	case errors.Is(err, domainErrors.ErrInvalidAmount):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "invalid amount"})
	case errors.Is(err, domainErrors.ErrRefundExceedsPayments):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "refund exceeds captured payments"})
	case errors.Is(err, domainErrors.ErrInvalidDateRange):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "invalid date range"})
	case errors.Is(err, domainErrors.ErrInvalidIBAN):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "invalid iban"})
	case errors.Is(err, domainErrors.ErrInvalidField):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "invalid field"})
	case errors.Is(err, domainErrors.ErrUnsupportedMedia):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "unsupported media"})
	case errors.Is(err, domainErrors.ErrInvalidStateTransition):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "invalid state transition"})
	case errors.Is(err, domainErrors.ErrInvalidCursor):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "invalid cursor"})
	case errors.Is(err, payment.ErrRefundRejected):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "refund rejected by processor"})
	case errors.As(err, &tooMany):
		c.Header("Retry-After", strconv.Itoa(int(tooMany.RetryAfter.Seconds())))
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "payment processor busy"})
	case errors.As(err, &gateway):
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "payment processor unavailable"})
	default:
		c.Status(http.StatusInternalServerError)
	}
}
