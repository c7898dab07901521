package request

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/domain/money"
)

type PaymentRequest struct {
	PaymentType string `json:"payment_type" binding:"required"`
}

func (r PaymentRequest) Type() entities.PaymentType {
	return entities.PaymentType(strings.ToUpper(strings.TrimSpace(r.PaymentType)))
}

// GatewayWebhookRequest is the signed confirmation body.
type GatewayWebhookRequest struct {
	GatewaySessionID string    `json:"gateway_session_id"`
	Reference        string    `json:"reference"`
	PaymentRef       string    `json:"payment_ref"`
	AmountCaptured   int64     `json:"amount_captured"`
	CapturedAt       time.Time `json:"captured_at"`
}

func (r GatewayWebhookRequest) ToEvent() entities.GatewayEvent {
	return entities.GatewayEvent{
		GatewaySessionID: strings.TrimSpace(r.GatewaySessionID),
		Reference:        strings.TrimSpace(r.Reference),
		PaymentRef:       strings.TrimSpace(r.PaymentRef),
		AmountCaptured:   money.Cents(r.AmountCaptured),
		CapturedAt:       r.CapturedAt.UTC(),
		Captured:         true,
	}
}

// GatewayNotification is Mercado Pago's native webhook. It only names the
// payment; the details are fetched from the gateway.
type GatewayNotification struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID json.RawMessage `json:"id"`
	} `json:"data"`
}

// ParseGatewayNotification reports whether body is a native payment
// notification and returns the payment id it carries.
func ParseGatewayNotification(body []byte) (string, bool) {
	var n GatewayNotification
	if err := json.Unmarshal(body, &n); err != nil || n.Type != "payment" {
		return "", false
	}
	id := string(bytes.Trim(bytes.TrimSpace(n.Data.ID), `"`))
	return id, id != ""
}
