package usecase

import (
	"errors"

	"event_marketplace/internal/usecase/interfaces"
)

var (
	ErrInvalidState        = errors.New("invalid state for operation")
	ErrExpired             = errors.New("quote expired")
	ErrAmountMismatch      = errors.New("amount mismatch")
	ErrPaymentModeMismatch = errors.New("payment mode not allowed by quote terms")
	ErrIneligiblePayment   = errors.New("payment type not eligible for booking")
	ErrNotCancellable      = errors.New("booking cannot be cancelled")
	ErrNotPayableOnline    = errors.New("booking is not payable online")
	ErrUnknownSession      = errors.New("unknown payment session")
	ErrGatewayUnavailable  = interfaces.ErrGatewayUnavailable
	ErrPaymentNotCaptured  = errors.New("payment not captured")
	ErrInvalidPaymentPlan  = errors.New("invalid payment plan")

	ErrQuoteNotFound   = errors.New("quote not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrListingNotFound = errors.New("listing not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInput    = errors.New("invalid input")

	// ErrConcurrentUpdate is returned when an optimistic write lost the race.
	ErrConcurrentUpdate = errors.New("concurrent update")
	// ErrBusy is returned when the entity lock could not be taken in time.
	ErrBusy = errors.New("resource busy, retry later")
)
