package handlers

import (
	"errors"
	"net/http"

	"event_marketplace/internal/adapter/http/middleware"
	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/usecase"
	"event_marketplace/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errNoActor        = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid bearer token", http.StatusUnauthorized)
)

func mapUseCaseError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, usecase.ErrInvalidPaymentPlan):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Operation not allowed for this user", http.StatusForbidden)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrBookingNotFound):
		return pkg.NewDomainErrorSimple("BOOKING_NOT_FOUND", "Booking not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrListingNotFound):
		return pkg.NewDomainErrorSimple("LISTING_NOT_FOUND", "Listing not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrUnknownSession):
		return pkg.NewDomainErrorSimple("UNKNOWN_PAYMENT_SESSION", "Unknown payment session", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidState):
		return pkg.NewDomainErrorSimple("INVALID_STATE", err.Error(), http.StatusConflict)
	case errors.Is(err, usecase.ErrIneligiblePayment):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_ELIGIBLE", err.Error(), http.StatusConflict)
	case errors.Is(err, usecase.ErrNotCancellable):
		return pkg.NewDomainErrorSimple("NOT_CANCELLABLE", "Booking cannot be cancelled", http.StatusConflict)
	case errors.Is(err, usecase.ErrNotPayableOnline):
		return pkg.NewDomainErrorSimple("NOT_PAYABLE_ONLINE", "Booking is settled on delivery", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentNotCaptured):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_CAPTURED", "Payment not captured yet", http.StatusConflict)
	case errors.Is(err, usecase.ErrConcurrentUpdate):
		return pkg.NewDomainErrorSimple("CONCURRENT_UPDATE", "Resource changed concurrently, retry", http.StatusConflict)
	case errors.Is(err, usecase.ErrBusy):
		return pkg.NewDomainErrorSimple("RESOURCE_BUSY", "Resource busy, retry later", http.StatusConflict)
	case errors.Is(err, usecase.ErrExpired):
		return pkg.NewDomainErrorSimple("QUOTE_EXPIRED", "Quote expired", http.StatusGone)
	case errors.Is(err, usecase.ErrAmountMismatch):
		return pkg.NewDomainErrorSimple("AMOUNT_MISMATCH", "Captured amount does not match the session", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrPaymentModeMismatch):
		return pkg.NewDomainErrorSimple("PAYMENT_MODE_MISMATCH", err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrGatewayUnavailable):
		return pkg.NewDomainErrorSimple("PAYMENT_GATEWAY_UNAVAILABLE", "Payment gateway unavailable", http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func respondError(c *gin.Context, err error) {
	appErr := mapUseCaseError(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func respondAppError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// requireActor reads the authenticated caller; it writes 401 and returns
// false when there is none.
func requireActor(c *gin.Context) (entities.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		respondAppError(c, errNoActor)
		return entities.Actor{}, false
	}
	return actor, true
}
