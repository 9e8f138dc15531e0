package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func limitedRequest(handler http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/kanji/jlpt/5", nil)
	req.RemoteAddr = remoteAddr
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsWithinBudget(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit(10)(okHandler())
	for i := 0; i < 10; i++ {
		rec := limitedRequest(handler, "198.51.100.7:4021")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i)
	}
}

func TestRateLimiter_RejectsOverBudget(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit(3)(okHandler())
	for i := 0; i < 3; i++ {
		limitedRequest(handler, "198.51.100.7:4021")
	}

	rec := limitedRequest(handler, "198.51.100.7:4021")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimiter_PortDoesNotSplitClient(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit(2)(okHandler())
	limitedRequest(handler, "198.51.100.7:1111")
	limitedRequest(handler, "198.51.100.7:2222")

	// Same IP, third port: budget is already spent.
	rec := limitedRequest(handler, "198.51.100.7:3333")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimiter_ClientsIndependent(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit(1)(okHandler())
	limitedRequest(handler, "198.51.100.7:4021")

	rec := limitedRequest(handler, "203.0.113.9:4021")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter_Refills(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	// 60 per minute refills one token per second.
	handler := rl.Limit(60)(okHandler())
	for i := 0; i < 60; i++ {
		limitedRequest(handler, "198.51.100.7:4021")
	}
	assert.Equal(t, http.StatusTooManyRequests, limitedRequest(handler, "198.51.100.7:4021").Code)

	time.Sleep(1100 * time.Millisecond)
	assert.Equal(t, http.StatusOK, limitedRequest(handler, "198.51.100.7:4021").Code)
}
