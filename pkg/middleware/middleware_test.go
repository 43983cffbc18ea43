package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripgenie/pkg/memcache"
	"tripgenie/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"uid": c.GetString(ContextUID), "trace": c.GetString(ContextTraceID)})
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitBlocksAfterLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(memcache.NewLocalCounterStore(time.Minute, 100), 10, time.Minute, zap.NewNop()))
	r.GET("/api/plan", okHandler)

	for i := 1; i <= 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/plan", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		if w := serve(r, req); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/plan", nil)
	req.RemoteAddr = "203.0.113.7:5000"
	if w := serve(r, req); w.Code != http.StatusTooManyRequests {
		t.Fatalf("11th request: expected 429, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/plan", nil)
	req.RemoteAddr = "198.51.100.9:5000"
	if w := serve(r, req); w.Code != http.StatusOK {
		t.Fatalf("other client: expected 200, got %d", w.Code)
	}
}

type brokenCounter struct{}

func (brokenCounter) Increment(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("connection refused")
}

func TestRateLimitFailsOpen(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(brokenCounter{}, 1, time.Minute, zap.NewNop()))
	r.GET("/api/plan", okHandler)

	for i := 0; i < 3; i++ {
		if w := serve(r, httptest.NewRequest(http.MethodGet, "/api/plan", nil)); w.Code != http.StatusOK {
			t.Fatalf("expected 200 when the counter store is down, got %d", w.Code)
		}
	}
}

func TestJWTAuthMiddleware(t *testing.T) {
	const secret = "test-secret"
	r := gin.New()
	r.Use(JWTAuthMiddleware(utils.NewHMACTokenVerifier(secret), zap.NewNop()))
	r.GET("/api/trips", okHandler)

	if w := serve(r, httptest.NewRequest(http.MethodGet, "/api/trips", nil)); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: expected 401, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	if w := serve(r, req); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", w.Code)
	}

	token, err := utils.CreateToken(secret, "user-42", "u@example.com", time.Minute)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := serve(r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"trace":"","uid":"user-42"}` {
		t.Fatalf("uid not exposed to handler: %s", body)
	}
}

func TestTraceIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.GET("/healthz", okHandler)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	minted := w.Header().Get(HeaderTraceID)
	if _, err := uuid.Parse(minted); err != nil {
		t.Fatalf("expected a minted uuid, got %q", minted)
	}

	inbound := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderTraceID, inbound)
	if got := serve(r, req).Header().Get(HeaderTraceID); got != inbound {
		t.Fatalf("expected inbound trace id %s, got %s", inbound, got)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderTraceID, "<script>")
	if got := serve(r, req).Header().Get(HeaderTraceID); got == "<script>" {
		t.Fatalf("malformed inbound trace id should be replaced")
	}
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://tripgenie.app"}))
	r.POST("/api/plan", okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/plan", nil)
	req.Header.Set("Origin", "https://tripgenie.app")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := serve(r, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://tripgenie.app" {
		t.Fatalf("unexpected allow origin %q", got)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/plan", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = serve(r, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow origin for foreign site %q", got)
	}
}
