package handler

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cyberguardian/academy/internal/config"
)

// loginLimiter throttles sign-in attempts per source IP over a sliding
// one-minute window. Failed and successful attempts both count; the goal
// is slowing credential stuffing, not punishing typos.
type loginLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	limit    int
	enabled  bool
}

func newLoginLimiter(cfg config.RateLimitConfig) *loginLimiter {
	return &loginLimiter{
		attempts: make(map[string][]time.Time),
		limit:    cfg.LoginAttemptsPerMinute,
		enabled:  cfg.Enabled,
	}
}

// Allow records an attempt from the request's IP and reports whether it
// is within the window limit.
func (l *loginLimiter) Allow(r *http.Request) bool {
	if !l.enabled {
		return true
	}
	ip := requestIP(r)
	now := time.Now()
	cutoff := now.Add(-time.Minute)

	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.attempts[ip][:0]
	for _, t := range l.attempts[ip] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	if len(recent) >= l.limit {
		l.attempts[ip] = recent
		return false
	}
	l.attempts[ip] = append(recent, now)
	return true
}

func requestIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
