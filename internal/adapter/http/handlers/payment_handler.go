package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	request "event_marketplace/internal/adapter/http/dto/request"
	response "event_marketplace/internal/adapter/http/dto/response"
	"event_marketplace/internal/infrastructure/payments"
	"event_marketplace/internal/usecase"
	"event_marketplace/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const signatureHeader = "X-Signature"

var errInvalidSignature = pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Webhook signature missing or invalid", http.StatusUnauthorized)

// PaymentHandler serves checkout requests and the three confirmation
// channels: signed webhook, gateway-native notification and redirect return.
type PaymentHandler struct {
	usecase       usecase.IPaymentUseCase
	webhookSecret []byte
	log           zerolog.Logger
}

func NewPaymentHandler(uc usecase.IPaymentUseCase, webhookSecret string, log zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		usecase:       uc,
		webhookSecret: []byte(webhookSecret),
		log:           log.With().Str("component", "payment").Str("layer", "handler").Logger(),
	}
}

// RequestPayment godoc
// @Summary      Open or reuse a checkout for a booking payment
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Booking id"
// @Param        body  body      request.PaymentRequest  true  "DEPOSIT, BALANCE or FULL"
// @Success      201   {object}  response.SessionHandleResponse
// @Success      200   {object}  response.SessionHandleResponse
// @Failure      409   {object}  pkg.HTTPError
// @Failure      502   {object}  pkg.HTTPError
// @Router       /bookings/{id}/payments [post]
func (h *PaymentHandler) RequestPayment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var payload request.PaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	handle, err := h.usecase.RequestPayment(c.Request.Context(), actor, c.Param("id"), payload.Type())
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusCreated
	if handle.Reused {
		status = http.StatusOK
	}
	c.JSON(status, response.FromSessionHandle(handle))
}

// ListPayments godoc
// @Summary      List payment sessions of a booking
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Booking id"
// @Success      200  {array}   response.PaymentSessionResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /bookings/{id}/payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	sessions, err := h.usecase.ListSessions(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentSessions(sessions))
}

// PaymentReturn godoc
// @Summary      Verify a payment after the gateway redirect
// @Tags         payments
// @Produce      json
// @Param        payment_id  query     string  true  "Gateway payment id"
// @Success      200         {object}  response.PaymentConfirmationResponse
// @Failure      409         {object}  pkg.HTTPError
// @Router       /payments/return [get]
func (h *PaymentHandler) PaymentReturn(c *gin.Context) {
	ref := strings.TrimSpace(c.Query("payment_id"))
	if ref == "" {
		respondAppError(c, errInvalidPayload)
		return
	}
	confirmation, err := h.usecase.VerifyReturn(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentConfirmation(confirmation))
}

// PaymentWebhook godoc
// @Summary      Gateway payment confirmation
// @Description  Accepts a body signed with X-Signature (hex HMAC-SHA256) or a Mercado Pago payment notification.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        X-Signature  header    string                         false  "hex HMAC-SHA256 of the body"
// @Param        body         body      request.GatewayWebhookRequest  true   "Confirmation"
// @Success      200          {object}  response.PaymentConfirmationResponse
// @Failure      401          {object}  pkg.HTTPError
// @Failure      422          {object}  pkg.HTTPError
// @Router       /webhooks/payments [post]
func (h *PaymentHandler) PaymentWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}

	signature := c.GetHeader(signatureHeader)
	if signature == "" {
		h.gatewayNotification(c, body)
		return
	}
	if !payments.VerifySignature(h.webhookSecret, body, signature) {
		h.log.Warn().Bool("alert", true).Msg("webhook signature rejected")
		respondAppError(c, errInvalidSignature)
		return
	}

	var payload request.GatewayWebhookRequest
	if err := json.Unmarshal(body, &payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	confirmation, err := h.usecase.ConfirmPayment(c.Request.Context(), payload.ToEvent())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentConfirmation(confirmation))
}

// gatewayNotification handles unsigned bodies, which are only trusted as a
// pointer to a payment that is then fetched from the gateway.
func (h *PaymentHandler) gatewayNotification(c *gin.Context, body []byte) {
	paymentID, ok := request.ParseGatewayNotification(body)
	if !ok {
		respondAppError(c, errInvalidSignature)
		return
	}
	confirmation, err := h.usecase.VerifyReturn(c.Request.Context(), paymentID)
	if errors.Is(err, usecase.ErrPaymentNotCaptured) {
		c.JSON(http.StatusOK, gin.H{"status": "pending"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentConfirmation(confirmation))
}
