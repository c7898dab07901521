package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"event_marketplace/internal/adapter/http/handlers/mocks"
	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestQuoteHandler_CreateQuote(t *testing.T) {
	t.Run("no actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := NewQuoteHandler(mocks.NewMockIQuoteUseCase(ctrl))
		r := newRouter(http.MethodPost, "/v1/quotes", nil, h.CreateQuote)

		w := do(r, http.MethodPost, "/v1/quotes", `{"client_id":"client-1"}`)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := NewQuoteHandler(mocks.NewMockIQuoteUseCase(ctrl))
		r := newRouter(http.MethodPost, "/v1/quotes", &vendor, h.CreateQuote)

		w := do(r, http.MethodPost, "/v1/quotes", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)
		r := newRouter(http.MethodPost, "/v1/quotes", &vendor, h.CreateQuote)

		uc.EXPECT().CreateDraft(gomock.Any(), vendor, gomock.Any()).
			DoAndReturn(func(_ any, _ entities.Actor, in usecase.QuoteDraftInput) (entities.Quote, error) {
				if in.ClientID != "client-1" || len(in.Items) != 1 || in.Items[0].UnitPrice != 2500 {
					t.Fatalf("unexpected input %+v", in)
				}
				if in.PaymentMode != entities.PaymentModeDepositBalance {
					t.Fatalf("expected payment mode normalised, got %q", in.PaymentMode)
				}
				return entities.Quote{
					ID:         "q-1",
					ProviderID: vendor.UserID,
					ClientID:   in.ClientID,
					Items:      in.Items,
					Currency:   "USD",
					Status:     entities.QuoteStatusDraft,
				}, nil
			})

		w := do(r, http.MethodPost, "/v1/quotes",
			`{"client_id":"client-1","payment_mode":"deposit_balance","items":[{"description":"DJ set","quantity":2,"unit_price":2500}]}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["total"] != float64(5000) {
			t.Fatalf("expected total 5000, got %v", body["total"])
		}
	})

	t.Run("forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)
		r := newRouter(http.MethodPost, "/v1/quotes", &client, h.CreateQuote)

		uc.EXPECT().CreateDraft(gomock.Any(), client, gomock.Any()).Return(entities.Quote{}, usecase.ErrForbidden)

		w := do(r, http.MethodPost, "/v1/quotes", `{"client_id":"client-1"}`)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_Transitions(t *testing.T) {
	cases := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{"send ok", "send", nil, http.StatusOK},
		{"send invalid state", "send", usecase.ErrInvalidState, http.StatusConflict},
		{"view not found", "view", usecase.ErrQuoteNotFound, http.StatusNotFound},
		{"decline concurrent", "decline", fmt.Errorf("decline: %w", usecase.ErrConcurrentUpdate), http.StatusConflict},
		{"revise busy", "revise", usecase.ErrBusy, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIQuoteUseCase(ctrl)
			h := NewQuoteHandler(uc)
			q := entities.Quote{ID: "q-1", Status: entities.QuoteStatusSent}

			var route gin.HandlerFunc
			switch tc.path {
			case "send":
				uc.EXPECT().Send(gomock.Any(), vendor, "q-1").Return(q, tc.err)
				route = h.SendQuote
			case "view":
				uc.EXPECT().MarkViewed(gomock.Any(), vendor, "q-1").Return(q, tc.err)
				route = h.ViewQuote
			case "decline":
				uc.EXPECT().Decline(gomock.Any(), vendor, "q-1").Return(q, tc.err)
				route = h.DeclineQuote
			case "revise":
				uc.EXPECT().Revise(gomock.Any(), vendor, "q-1").Return(q, tc.err)
				route = h.ReviseQuote
			}

			r := newRouter(http.MethodPost, "/v1/quotes/:id/"+tc.path, &vendor, route)
			w := do(r, http.MethodPost, "/v1/quotes/q-1/"+tc.path, "")
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
		})
	}
}

func TestQuoteHandler_GetQuote_ReportsEffectiveExpiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIQuoteUseCase(ctrl)
	h := NewQuoteHandler(uc)
	past := time.Now().UTC().Add(-time.Hour)
	uc.EXPECT().GetByID(gomock.Any(), client, "q-1").
		Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusSent, ValidUntil: past}, nil)

	r := newRouter(http.MethodGet, "/v1/quotes/:id", &client, h.GetQuote)
	w := do(r, http.MethodGet, "/v1/quotes/q-1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != string(entities.QuoteStatusExpired) {
		t.Fatalf("expected EXPIRED, got %v", body["status"])
	}
}

func TestQuoteHandler_AcceptQuote(t *testing.T) {
	acceptBody := `{"client_name":"Ana","client_email":"ana@example.com","event_date":"2030-06-01T18:00:00Z","payment_mode":"full_payment"}`

	t.Run("missing client details", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := NewQuoteHandler(mocks.NewMockIQuoteUseCase(ctrl))
		r := newRouter(http.MethodPost, "/v1/quotes/:id/accept", &client, h.AcceptQuote)

		w := do(r, http.MethodPost, "/v1/quotes/q-1/accept", `{"client_name":"Ana"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("expired", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)
		r := newRouter(http.MethodPost, "/v1/quotes/:id/accept", &client, h.AcceptQuote)

		uc.EXPECT().Accept(gomock.Any(), client, "q-1", gomock.Any()).
			Return(entities.Quote{}, entities.Booking{}, usecase.ErrExpired)

		w := do(r, http.MethodPost, "/v1/quotes/q-1/accept", acceptBody)
		if w.Code != http.StatusGone {
			t.Fatalf("expected 410, got %d", w.Code)
		}
	})

	t.Run("mode mismatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)
		r := newRouter(http.MethodPost, "/v1/quotes/:id/accept", &client, h.AcceptQuote)

		uc.EXPECT().Accept(gomock.Any(), client, "q-1", gomock.Any()).
			Return(entities.Quote{}, entities.Booking{}, usecase.ErrPaymentModeMismatch)

		w := do(r, http.MethodPost, "/v1/quotes/q-1/accept", acceptBody)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)
		r := newRouter(http.MethodPost, "/v1/quotes/:id/accept", &client, h.AcceptQuote)

		uc.EXPECT().Accept(gomock.Any(), client, "q-1", gomock.Any()).
			DoAndReturn(func(_ any, _ entities.Actor, _ string, d usecase.AcceptanceDetails) (entities.Quote, entities.Booking, error) {
				if d.PaymentMode != entities.PaymentModeFull || d.EventDate.Year() != 2030 {
					t.Fatalf("unexpected details %+v", d)
				}
				return entities.Quote{ID: "q-1", Status: entities.QuoteStatusAccepted},
					entities.Booking{ID: "b-1", QuoteID: "q-1", Status: entities.BookingStatusPendingPayment, PricingTotal: 5000},
					nil
			})

		w := do(r, http.MethodPost, "/v1/quotes/q-1/accept", acceptBody)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var body struct {
			Quote   map[string]any `json:"quote"`
			Booking map[string]any `json:"booking"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Booking["id"] != "b-1" || body.Quote["status"] != "ACCEPTED" {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	})
}
