package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// TestRateLimiter_AllowsWithinBurst tests that requests inside the burst pass
func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(1, 3)
	defer rl.Stop()
	handler := rl.Handler(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}
}

// TestRateLimiter_RejectsOverBurst tests the 429 once the budget is spent
func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	defer rl.Stop()
	handler := rl.Handler(okHandler())

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	handler.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

// TestRateLimiter_PerIP tests that one client's exhaustion does not affect
// another
func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	defer rl.Stop()
	handler := rl.Handler(okHandler())

	exhaust := httptest.NewRequest(http.MethodGet, "/", nil)
	exhaust.RemoteAddr = "10.0.0.3:1234"
	handler.ServeHTTP(httptest.NewRecorder(), exhaust)
	blocked := httptest.NewRecorder()
	handler.ServeHTTP(blocked, exhaust)
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.4:1234"
	allowed := httptest.NewRecorder()
	handler.ServeHTTP(allowed, other)
	assert.Equal(t, http.StatusOK, allowed.Code)
}
