package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testConfig() *RateLimitConfig {
	return &RateLimitConfig{
		RequestsPerSecond: 1,
		Burst:             3,
		BlockDuration:     time.Minute,
		CleanupInterval:   time.Minute,
		BucketTTL:         time.Hour,
	}
}

// TestAllowIPBurst tests that the burst drains and then blocks
func TestAllowIPBurst(t *testing.T) {
	rl := NewRateLimiter(testConfig())
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := rl.AllowIP("10.0.0.1")
		if !allowed {
			t.Fatalf("request %d: expected allow, got %+v", i, info)
		}
	}

	allowed, info := rl.AllowIP("10.0.0.1")
	if allowed {
		t.Fatal("expected fourth request to be rejected")
	}
	if info.RetryAfter <= 0 {
		t.Errorf("expected positive retry-after, got %d", info.RetryAfter)
	}

	// Blocked buckets stay blocked for the block duration
	if allowed, info := rl.AllowIP("10.0.0.1"); allowed || info.LimitType != "blocked" {
		t.Errorf("expected blocked bucket, got allowed=%v type=%s", allowed, info.LimitType)
	}
}

// TestAllowIPIsolatesClients tests that buckets are per IP
func TestAllowIPIsolatesClients(t *testing.T) {
	rl := NewRateLimiter(testConfig())
	defer rl.Stop()

	for i := 0; i < 4; i++ {
		rl.AllowIP("10.0.0.1")
	}
	if allowed, _ := rl.AllowIP("10.0.0.2"); !allowed {
		t.Error("expected a different IP to be unaffected")
	}

	stats := rl.GetStats()
	if stats.TotalBuckets != 2 {
		t.Errorf("expected 2 buckets, got %d", stats.TotalBuckets)
	}
	if stats.BlockedBuckets != 1 {
		t.Errorf("expected 1 blocked bucket, got %d", stats.BlockedBuckets)
	}
}

// TestRateLimitMiddleware tests the HTTP wrapper and its headers
func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(testConfig())
	defer rl.Stop()

	handler := RateLimitMiddleware(rl)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/pools", nil)
		req.RemoteAddr = "10.0.0.5:51234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
		if rec.Header().Get("X-RateLimit-Limit") == "" {
			t.Error("expected X-RateLimit-Limit header")
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/pools", nil)
	req.RemoteAddr = "10.0.0.5:51234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on rejection")
	}
}

// TestGetClientIP tests the forwarded-header precedence
func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.9:443"

	if ip := getClientIP(req); ip != "10.0.0.9" {
		t.Errorf("expected remote addr ip, got %s", ip)
	}

	req.Header.Set("X-Real-IP", "203.0.113.7")
	if ip := getClientIP(req); ip != "203.0.113.7" {
		t.Errorf("expected X-Real-IP, got %s", ip)
	}

	req.Header.Set("X-Forwarded-For", "198.51.100.4, 203.0.113.7")
	if ip := getClientIP(req); ip != "198.51.100.4" {
		t.Errorf("expected first X-Forwarded-For entry, got %s", ip)
	}
}
