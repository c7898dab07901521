package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"event_marketplace/internal/adapter/http/middleware"
	"event_marketplace/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

var (
	vendor = entities.Actor{UserID: "vendor-1", Role: entities.RoleVendor, Email: "vendor@example.com"}
	client = entities.Actor{UserID: "client-1", Role: entities.RoleClient, Email: "client@example.com"}
)

// newRouter mounts a single route, optionally behind a fixed actor.
func newRouter(method, path string, actor *entities.Actor, h gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if actor != nil {
		r.Handle(method, path, middleware.SetActor(*actor), h)
	} else {
		r.Handle(method, path, h)
	}
	return r
}

func do(r *gin.Engine, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPing(t *testing.T) {
	r := newRouter(http.MethodGet, "/v1/ping", nil, Ping)
	w := do(r, http.MethodGet, "/v1/ping", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("pong")) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}
