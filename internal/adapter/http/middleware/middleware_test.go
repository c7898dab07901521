package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"event_marketplace/internal/domain/entities"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

func authRouter(a *Authenticator) *gin.Engine {
	r := gin.New()
	r.GET("/me", a.RequireAuth(), func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, actor)
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a := NewAuthenticator("secret")

	t.Run("valid token", func(t *testing.T) {
		token, err := a.Issue(entities.Actor{UserID: "vendor-1", Role: entities.RoleVendor, Email: "v@example.com"}, time.Hour)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		authRouter(a).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var actor entities.Actor
		if err := json.Unmarshal(w.Body.Bytes(), &actor); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if actor.UserID != "vendor-1" || actor.Role != entities.RoleVendor {
			t.Fatalf("unexpected actor %+v", actor)
		}
	})

	t.Run("rejected tokens", func(t *testing.T) {
		expired, _ := a.Issue(entities.Actor{UserID: "u", Role: entities.RoleClient}, -time.Minute)
		foreign, _ := NewAuthenticator("other").Issue(entities.Actor{UserID: "u", Role: entities.RoleClient}, time.Hour)
		system, _ := a.Issue(entities.Actor{UserID: "u", Role: entities.RoleSystem}, time.Hour)
		none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Sub: "u", Role: "admin"}).SignedString(jwt.UnsafeAllowNoneSignatureType)

		for name, header := range map[string]string{
			"missing":     "",
			"not bearer":  "Basic abc",
			"garbage":     "Bearer abc.def",
			"expired":     "Bearer " + expired,
			"wrong key":   "Bearer " + foreign,
			"system role": "Bearer " + system,
			"alg none":    "Bearer " + none,
		} {
			t.Run(name, func(t *testing.T) {
				req := httptest.NewRequest(http.MethodGet, "/me", nil)
				if header != "" {
					req.Header.Set("Authorization", header)
				}
				w := httptest.NewRecorder()
				authRouter(a).ServeHTTP(w, req)
				if w.Code != http.StatusUnauthorized {
					t.Fatalf("expected 401, got %d", w.Code)
				}
			})
		}
	})
}

func TestAccessLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	r := gin.New()
	r.Use(Tracing("test"), AccessLog(zerolog.New(&buf)), Recovery(zerolog.Nop()))
	r.GET("/v1/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log: %v", err)
	}
	if entry["type"] != "access" || entry["url"] != "/v1/ping" || entry["status"] != float64(200) {
		t.Fatalf("unexpected access log %v", entry)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", w.Code)
	}
}
