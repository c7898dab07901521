package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"event_marketplace/internal/adapter/http/middleware"
	"event_marketplace/internal/bootstrap"
	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func testConfig() config.Config {
	return config.Config{
		ServiceName:           "event-marketplace-test",
		Env:                   "test",
		Port:                  "0",
		Store:                 config.StoreMemory,
		Gateway:               config.GatewayMock,
		Notifier:              config.NotifierLog,
		PaymentReturnURL:      "http://localhost/v1/payments/return",
		JWTSecret:             "test-secret",
		LockWait:              time.Second,
		Currency:              "BRL",
		DepositPercent:        30,
		BalanceLeadTime:       7 * 24 * time.Hour,
		BalanceReminderWindow: 72 * time.Hour,
		PaymentSessionTTL:     30 * time.Minute,
		GatewayMaxAttempts:    1,
	}
}

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	auth   *middleware.Authenticator
}

func (a apiClient) call(actor *entities.Actor, method, path string, body any) (int, map[string]any) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		token, err := a.auth.Issue(*actor, time.Hour)
		if err != nil {
			a.t.Fatalf("issue token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			a.t.Fatalf("decode %s: %v", w.Body.String(), err)
		}
	}
	return w.Code, out
}

func newAPI(t *testing.T) apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	c, err := bootstrap.New(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return apiClient{t: t, router: NewRouter(c), auth: middleware.NewAuthenticator(cfg.JWTSecret)}
}

func TestRouter_PublicAndPrivateRoutes(t *testing.T) {
	api := newAPI(t)

	if code, _ := api.call(nil, http.MethodGet, "/v1/ping", nil); code != http.StatusOK {
		t.Fatalf("ping: expected 200, got %d", code)
	}
	if code, _ := api.call(nil, http.MethodGet, "/v1/bookings/b-1", nil); code != http.StatusUnauthorized {
		t.Fatalf("bookings without token: expected 401, got %d", code)
	}
	if code, _ := api.call(nil, http.MethodPost, "/v1/webhooks/payments", map[string]any{"reference": "x"}); code != http.StatusUnauthorized {
		t.Fatalf("unsigned webhook: expected 401, got %d", code)
	}
}

func TestRouter_DirectBookingPaidThroughReturn(t *testing.T) {
	api := newAPI(t)
	vendor := entities.Actor{UserID: "vendor-1", Role: entities.RoleVendor, Email: "vendor@example.com"}
	client := entities.Actor{UserID: "client-1", Role: entities.RoleClient, Email: "client@example.com"}

	code, listing := api.call(&vendor, http.MethodPost, "/v1/listings", map[string]any{
		"title":     "String quartet",
		"min_price": 120000,
	})
	if code != http.StatusCreated {
		t.Fatalf("create listing: expected 201, got %d %v", code, listing)
	}

	code, booking := api.call(&client, http.MethodPost, "/v1/bookings", map[string]any{
		"provider_id":  vendor.UserID,
		"listing_ids":  []string{listing["id"].(string)},
		"client_name":  "Ana Souza",
		"client_email": "ana@example.com",
		"event_date":   time.Now().UTC().Add(60 * 24 * time.Hour).Format(time.RFC3339),
	})
	if code != http.StatusCreated {
		t.Fatalf("create booking: expected 201, got %d %v", code, booking)
	}
	if booking["status"] != string(entities.BookingStatusPendingPayment) || booking["pricing_total"] != float64(120000) {
		t.Fatalf("unexpected booking %v", booking)
	}
	bookingPath := "/v1/bookings/" + booking["id"].(string)

	code, session := api.call(&client, http.MethodPost, bookingPath+"/payments", map[string]any{"payment_type": "FULL"})
	if code != http.StatusCreated {
		t.Fatalf("request payment: expected 201, got %d %v", code, session)
	}
	code, again := api.call(&client, http.MethodPost, bookingPath+"/payments", map[string]any{"payment_type": "FULL"})
	if code != http.StatusOK || again["id"] != session["id"] {
		t.Fatalf("second request should reuse the live session, got %d %v", code, again)
	}

	redirect, err := url.Parse(session["redirect_url"].(string))
	if err != nil {
		t.Fatalf("redirect url: %v", err)
	}
	paymentID := redirect.Query().Get("payment_id")

	code, confirmation := api.call(nil, http.MethodGet, "/v1/payments/return?payment_id="+url.QueryEscape(paymentID), nil)
	if code != http.StatusOK {
		t.Fatalf("return: expected 200, got %d %v", code, confirmation)
	}
	paid := confirmation["booking"].(map[string]any)
	if paid["status"] != string(entities.BookingStatusFullyPaid) || paid["outstanding_balance"] != float64(0) {
		t.Fatalf("unexpected booking after payment %v", paid)
	}

	code, replay := api.call(nil, http.MethodGet, "/v1/payments/return?payment_id="+url.QueryEscape(paymentID), nil)
	if code != http.StatusOK || replay["replayed"] != true {
		t.Fatalf("replayed return: expected 200 replayed, got %d %v", code, replay)
	}

	code, _ = api.call(&client, http.MethodPost, bookingPath+"/cancel", nil)
	if code != http.StatusConflict {
		t.Fatalf("cancel when fully paid: expected 409, got %d", code)
	}

	code, confirmed := api.call(&vendor, http.MethodPost, bookingPath+"/confirm", nil)
	if code != http.StatusOK || confirmed["status"] != string(entities.BookingStatusConfirmed) {
		t.Fatalf("confirm: got %d %v", code, confirmed)
	}
}
