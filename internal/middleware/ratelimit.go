package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"event-judging/internal/config"
)

// RateLimiter implements a simple token bucket rate limiter keyed by
// client IP
type RateLimiter struct {
	enabled    bool
	requests   int
	duration   time.Duration
	trustProxy bool
	visitors   map[string]*visitor
	mu         sync.Mutex
	now        func() time.Time
}

type visitor struct {
	lastSeen time.Time
	tokens   int
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(cfg *config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		enabled:    cfg.Enabled,
		requests:   cfg.Requests,
		duration:   cfg.Duration,
		trustProxy: cfg.TrustProxy,
		visitors:   make(map[string]*visitor),
		now:        time.Now,
	}
}

// Limit rate limits requests based on IP address
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.enabled || rl.allow(getIP(r, rl.trustProxy)) {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Retry-After", strconv.Itoa(int(rl.duration.Seconds())))
		respondWithError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
	})
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, exists := rl.visitors[ip]
	if !exists || now.Sub(v.lastSeen) >= rl.duration {
		rl.visitors[ip] = &visitor{lastSeen: now, tokens: rl.requests - 1}
		return true
	}
	if v.tokens > 0 {
		v.tokens--
		v.lastSeen = now
		return true
	}
	return false
}

// Cleanup removes idle visitors every minute until ctx is done
func (rl *RateLimiter) Cleanup(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.mu.Lock()
			for ip, v := range rl.visitors {
				if rl.now().Sub(v.lastSeen) > 3*rl.duration {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}
