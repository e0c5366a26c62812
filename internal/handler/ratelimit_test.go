package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/cyberguardian/academy/internal/config"
)

func TestLoginLimiter(t *testing.T) {
	l := newLoginLimiter(config.RateLimitConfig{Enabled: true, LoginAttemptsPerMinute: 3})

	req := httptest.NewRequest("POST", "/api/auth/signin", nil)
	req.RemoteAddr = "10.0.0.1:50000"

	for i := 0; i < 3; i++ {
		if !l.Allow(req) {
			t.Fatalf("attempt %d denied, want allowed", i+1)
		}
	}
	if l.Allow(req) {
		t.Error("attempt 4 allowed, want denied")
	}

	// Other IPs are unaffected.
	other := httptest.NewRequest("POST", "/api/auth/signin", nil)
	other.RemoteAddr = "10.0.0.2:50000"
	if !l.Allow(other) {
		t.Error("different IP denied")
	}
}

func TestLoginLimiterDisabled(t *testing.T) {
	l := newLoginLimiter(config.RateLimitConfig{Enabled: false, LoginAttemptsPerMinute: 1})
	req := httptest.NewRequest("POST", "/api/auth/signin", nil)
	req.RemoteAddr = "10.0.0.1:50000"
	for i := 0; i < 10; i++ {
		if !l.Allow(req) {
			t.Fatal("disabled limiter denied a request")
		}
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"Bearer ", ""},
		{"Basic abc123", ""},
		{"", ""},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/api/profile", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		if got := bearerToken(req); got != tc.want {
			t.Errorf("bearerToken(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
