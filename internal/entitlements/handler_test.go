package entitlements_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"mailpanel-backend/internal/bootstrap"
	"mailpanel-backend/internal/shared/config"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func TestPremiumAccessDeniedWithoutPayments(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entitlements/premium-access", nil)
	req.Header.Set("X-Guest-Id", "test-guest")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var payload struct {
		HasPremiumAccess bool `json:"hasPremiumAccess"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.HasPremiumAccess {
		t.Fatalf("expected no premium access for empty ledger")
	}
}

func TestPremiumAccessGrantedAfterDevSeed(t *testing.T) {
	router := newTestRouter(t)

	seed := strings.NewReader(`{"type":"one_time","status":"completed"}`)
	reqSeed := httptest.NewRequest(http.MethodPost, "/api/v1/dev/payments", seed)
	reqSeed.Header.Set("Content-Type", "application/json")
	reqSeed.Header.Set("X-Guest-Id", "test-guest")
	respSeed := httptest.NewRecorder()
	router.ServeHTTP(respSeed, reqSeed)

	if respSeed.Code != http.StatusCreated {
		t.Fatalf("expected 201 from dev seed, got %d: %s", respSeed.Code, respSeed.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entitlements/premium-access", nil)
	req.Header.Set("X-Guest-Id", "test-guest")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var payload struct {
		HasPremiumAccess bool `json:"hasPremiumAccess"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.HasPremiumAccess {
		t.Fatalf("expected premium access after seeding a completed purchase")
	}

	// The subscription endpoint evaluates the same predicate.
	reqSub := httptest.NewRequest(http.MethodGet, "/api/v1/entitlements/subscription", nil)
	reqSub.Header.Set("X-Guest-Id", "test-guest")
	respSub := httptest.NewRecorder()
	router.ServeHTTP(respSub, reqSub)

	if respSub.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", respSub.Code)
	}
	var subPayload struct {
		HasActiveSubscription bool `json:"hasActiveSubscription"`
	}
	if err := json.NewDecoder(respSub.Body).Decode(&subPayload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !subPayload.HasActiveSubscription {
		t.Fatalf("expected subscription endpoint to report access")
	}
}
