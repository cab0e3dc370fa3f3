package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 5) // 10 per minute, burst of 5
	defer rl.Stop()

	// First 5 requests should be allowed (burst)
	for i := 0; i < 5; i++ {
		if allowed, _, _ := rl.Allow("10.0.0.1"); !allowed {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	// 6th request should be rate limited (exceeded burst)
	allowed, remaining, reset := rl.Allow("10.0.0.1")
	if allowed {
		t.Error("Request 6 should be rate limited")
	}
	if remaining != 0 {
		t.Errorf("Expected 0 remaining, got %d", remaining)
	}
	if !reset.After(time.Now()) {
		t.Error("Expected reset time in the future")
	}
}

func TestRateLimiter_DifferentClients(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 3)
	defer rl.Stop()

	// Exhaust the first client's burst
	for i := 0; i < 3; i++ {
		if allowed, _, _ := rl.Allow("10.0.0.1"); !allowed {
			t.Errorf("Client 1 request %d should be allowed", i+1)
		}
	}

	if allowed, _, _ := rl.Allow("10.0.0.1"); allowed {
		t.Error("Client 1 should be rate limited")
	}

	// The second client should still have its full burst
	for i := 0; i < 3; i++ {
		if allowed, _, _ := rl.Allow("10.0.0.2"); !allowed {
			t.Errorf("Client 2 request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_EvictStale(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 3)
	defer rl.Stop()

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.2")
	if rl.size() != 2 {
		t.Fatalf("Expected 2 tracked clients, got %d", rl.size())
	}

	rl.evictStale(time.Now().Add(LimiterTTL+time.Second), LimiterTTL)
	if rl.size() != 0 {
		t.Errorf("Expected stale limiters to be evicted, %d left", rl.size())
	}
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter()
	rl.Stop()
	rl.Stop()
}

func TestRateLimitMiddleware_SetsHeaders(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(30, 2)
	defer rl.Stop()

	req := httptest.NewRequest(http.MethodPost, "/users/signin", nil)
	req.Header.Set(echo.HeaderXRealIP, "192.0.2.10")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerCalled := false
	h := RateLimitMiddleware(rl)(func(c echo.Context) error {
		handlerCalled = true
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !handlerCalled {
		t.Error("Expected handler to be called")
	}
	if got := rec.Header().Get("X-RateLimit-Limit"); got != "30" {
		t.Errorf("Expected X-RateLimit-Limit 30, got %q", got)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "1" {
		t.Errorf("Expected X-RateLimit-Remaining 1, got %q", got)
	}
	if rec.Header().Get("X-RateLimit-Reset") == "" {
		t.Error("Expected X-RateLimit-Reset header")
	}
}

func TestRateLimitMiddleware_RejectsOverLimit(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(1, 1)
	defer rl.Stop()

	calls := 0
	h := RateLimitMiddleware(rl)(func(c echo.Context) error {
		calls++
		return c.NoContent(http.StatusOK)
	})

	var rec *httptest.ResponseRecorder
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/users/signup", nil)
		req.Header.Set(echo.HeaderXRealIP, "192.0.2.20")
		rec = httptest.NewRecorder()
		if err := h(e.NewContext(req, rec)); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	if calls != 1 {
		t.Errorf("Expected handler to run once, ran %d times", calls)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected status 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}

	var body problemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if body.Status != http.StatusTooManyRequests || body.Type != errorTypeRateLimit {
		t.Errorf("Unexpected problem body %+v", body)
	}
	if body.Instance != "/users/signup" {
		t.Errorf("Expected instance /users/signup, got %s", body.Instance)
	}
}

func TestRateLimitMiddleware_OtherClientUnaffected(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(1, 1)
	defer rl.Stop()

	h := RateLimitMiddleware(rl)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for _, ip := range []string{"192.0.2.30", "192.0.2.30", "192.0.2.31"} {
		req := httptest.NewRequest(http.MethodPost, "/users/signin", nil)
		req.Header.Set(echo.HeaderXRealIP, ip)
		rec := httptest.NewRecorder()
		_ = h(e.NewContext(req, rec))
		if ip == "192.0.2.31" && rec.Code != http.StatusOK {
			t.Errorf("Expected fresh client to pass, got %d", rec.Code)
		}
	}
}
