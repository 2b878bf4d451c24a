package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"charmly/config"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a fixed-window request counter. Authenticated requests are
// keyed by user id so a shared NAT address does not pool everyone into one
// bucket; anonymous requests fall back to client IP.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
}

type window struct {
	start time.Time
	count int
}

func NewRateLimiter(cfg config.ServerConfig) *RateLimiter {
	limit := cfg.RateLimit
	if limit <= 0 {
		limit = 100
	}
	period := cfg.RateLimitWindow
	if period <= 0 {
		period = time.Minute
	}
	r := &RateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
	}
	go r.sweep()
	return r
}

// Allow records one request for key and reports whether it fits in the
// current window.
func (r *RateLimiter) Allow(key string) bool {
	now := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.windows[key]
	if !ok || now.Sub(w.start) >= r.period {
		r.windows[key] = &window{start: now, count: 1}
		return true
	}
	if w.count >= r.limit {
		return false
	}
	w.count++
	return true
}

func (r *RateLimiter) sweep() {
	tick := time.NewTicker(r.period)
	for range tick.C {
		cutoff := time.Now().Add(-r.period)
		r.mu.Lock()
		for k, w := range r.windows {
			if w.start.Before(cutoff) {
				delete(r.windows, k)
			}
		}
		r.mu.Unlock()
	}
}

// Middleware enforces the limit. Mount it after AuthRequired to key by user,
// or on public routes to key by IP.
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if id := GetUserID(c); id != 0 {
			key = "u:" + strconv.FormatUint(uint64(id), 10)
		}
		if !r.Allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
