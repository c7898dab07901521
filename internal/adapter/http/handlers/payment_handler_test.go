package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"event_marketplace/internal/adapter/http/handlers/mocks"
	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/infrastructure/payments"
	"event_marketplace/internal/usecase"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

const testWebhookSecret = "whsec-test"

func newPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return NewPaymentHandler(uc, testWebhookSecret, zerolog.Nop())
}

func TestPaymentHandler_RequestPayment(t *testing.T) {
	t.Run("new session is created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newRouter(http.MethodPost, "/v1/bookings/:id/payments", &client, newPaymentHandler(uc).RequestPayment)

		uc.EXPECT().RequestPayment(gomock.Any(), client, "b-1", entities.PaymentTypeDeposit).
			Return(usecase.SessionHandle{Session: entities.PaymentSession{ID: "ps-1", RedirectURL: "https://pay/ps-1"}}, nil)

		w := do(r, http.MethodPost, "/v1/bookings/b-1/payments", `{"payment_type":"deposit"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})

	t.Run("live session is reused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newRouter(http.MethodPost, "/v1/bookings/:id/payments", &client, newPaymentHandler(uc).RequestPayment)

		uc.EXPECT().RequestPayment(gomock.Any(), client, "b-1", entities.PaymentTypeFull).
			Return(usecase.SessionHandle{Session: entities.PaymentSession{ID: "ps-1"}, Reused: true}, nil)

		w := do(r, http.MethodPost, "/v1/bookings/b-1/payments", `{"payment_type":"FULL"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["reused"] != true {
			t.Fatalf("expected reused flag, got %v", body["reused"])
		}
	})

	t.Run("gateway down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newRouter(http.MethodPost, "/v1/bookings/:id/payments", &client, newPaymentHandler(uc).RequestPayment)

		uc.EXPECT().RequestPayment(gomock.Any(), client, "b-1", entities.PaymentTypeFull).
			Return(usecase.SessionHandle{}, usecase.ErrGatewayUnavailable)

		w := do(r, http.MethodPost, "/v1/bookings/b-1/payments", `{"payment_type":"FULL"}`)
		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})

	t.Run("cash on delivery booking", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newRouter(http.MethodPost, "/v1/bookings/:id/payments", &client, newPaymentHandler(uc).RequestPayment)

		uc.EXPECT().RequestPayment(gomock.Any(), client, "b-1", entities.PaymentTypeFull).
			Return(usecase.SessionHandle{}, usecase.ErrNotPayableOnline)

		w := do(r, http.MethodPost, "/v1/bookings/b-1/payments", `{"payment_type":"FULL"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_ListPayments(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIPaymentUseCase(ctrl)
	r := newRouter(http.MethodGet, "/v1/bookings/:id/payments", &vendor, newPaymentHandler(uc).ListPayments)

	uc.EXPECT().ListSessions(gomock.Any(), vendor, "b-1").
		Return([]entities.PaymentSession{{ID: "ps-1"}, {ID: "ps-2"}}, nil)

	w := do(r, http.MethodGet, "/v1/bookings/b-1/payments", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(body))
	}
}

func TestPaymentHandler_PaymentReturn(t *testing.T) {
	t.Run("missing payment id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := newRouter(http.MethodGet, "/v1/payments/return", nil, newPaymentHandler(mocks.NewMockIPaymentUseCase(ctrl)).PaymentReturn)

		w := do(r, http.MethodGet, "/v1/payments/return", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("verified", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newRouter(http.MethodGet, "/v1/payments/return", nil, newPaymentHandler(uc).PaymentReturn)

		uc.EXPECT().VerifyReturn(gomock.Any(), "pay-77").Return(usecase.PaymentConfirmation{
			Session: entities.PaymentSession{ID: "ps-1", Status: entities.PaymentSessionStatusConfirmed},
			Booking: entities.Booking{ID: "b-1", Status: entities.BookingStatusFullyPaid},
		}, nil)

		w := do(r, http.MethodGet, "/v1/payments/return?payment_id=pay-77", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_PaymentWebhook(t *testing.T) {
	captured := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	body := `{"gateway_session_id":"gw-1","reference":"ps-1","payment_ref":"pay-1","amount_captured":3000,"captured_at":"2030-01-02T03:04:05Z"}`
	signature := payments.Sign([]byte(testWebhookSecret), []byte(body))

	t.Run("bad signature", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := newRouter(http.MethodPost, "/v1/webhooks/payments", nil, newPaymentHandler(mocks.NewMockIPaymentUseCase(ctrl)).PaymentWebhook)

		w := do(r, http.MethodPost, "/v1/webhooks/payments", body, signatureHeader, "deadbeef")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("signed confirmation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newRouter(http.MethodPost, "/v1/webhooks/payments", nil, newPaymentHandler(uc).PaymentWebhook)

		uc.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, ev entities.GatewayEvent) (usecase.PaymentConfirmation, error) {
				if ev.GatewaySessionID != "gw-1" || ev.Reference != "ps-1" || ev.PaymentRef != "pay-1" {
					t.Fatalf("unexpected event %+v", ev)
				}
				if ev.AmountCaptured != 3000 || !ev.Captured || !ev.CapturedAt.Equal(captured) {
					t.Fatalf("unexpected capture %+v", ev)
				}
				return usecase.PaymentConfirmation{Replayed: true}, nil
			})

		w := do(r, http.MethodPost, "/v1/webhooks/payments", body, signatureHeader, signature)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("amount mismatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newRouter(http.MethodPost, "/v1/webhooks/payments", nil, newPaymentHandler(uc).PaymentWebhook)

		uc.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any()).Return(usecase.PaymentConfirmation{}, usecase.ErrAmountMismatch)

		w := do(r, http.MethodPost, "/v1/webhooks/payments", body, signatureHeader, signature)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("unsigned body that is not a notification", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := newRouter(http.MethodPost, "/v1/webhooks/payments", nil, newPaymentHandler(mocks.NewMockIPaymentUseCase(ctrl)).PaymentWebhook)

		w := do(r, http.MethodPost, "/v1/webhooks/payments", body)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("gateway notification is verified", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newRouter(http.MethodPost, "/v1/webhooks/payments", nil, newPaymentHandler(uc).PaymentWebhook)

		uc.EXPECT().VerifyReturn(gomock.Any(), "123456").Return(usecase.PaymentConfirmation{}, nil)

		w := do(r, http.MethodPost, "/v1/webhooks/payments", `{"type":"payment","action":"payment.updated","data":{"id":123456}}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("gateway notification still pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newRouter(http.MethodPost, "/v1/webhooks/payments", nil, newPaymentHandler(uc).PaymentWebhook)

		uc.EXPECT().VerifyReturn(gomock.Any(), "42").Return(usecase.PaymentConfirmation{}, usecase.ErrPaymentNotCaptured)

		w := do(r, http.MethodPost, "/v1/webhooks/payments", `{"type":"payment","data":{"id":"42"}}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
