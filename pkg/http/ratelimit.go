package http

import (
	"math"
	"sync"
	"time"

	applogger "ChurnScope/pkg/logger"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const sweepInterval = 10 * time.Minute

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	rps       rate.Limit
	burst     int
	lastSweep time.Time
	l         *applogger.Logger
}

func NewRateLimiter(rps float64, burst int, l *applogger.Logger) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters:  make(map[string]*rate.Limiter),
		rps:       rate.Limit(rps),
		burst:     burst,
		lastSweep: time.Now(),
		l:         l,
	}
}

// Allow consumes one token for key.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	now := time.Now()
	if now.Sub(rl.lastSweep) >= sweepInterval {
		rl.sweep()
		rl.lastSweep = now
	}
	lim, ok := rl.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rl.rps, rl.burst)
		rl.limiters[key] = lim
	}
	rl.mu.Unlock()
	return lim.AllowN(now, 1)
}

// sweep drops buckets that have refilled completely; they carry no state.
func (rl *RateLimiter) sweep() {
	for k, lim := range rl.limiters {
		if lim.Tokens() >= float64(rl.burst) {
			delete(rl.limiters, k)
		}
	}
}

// retryAfter is the wait, in whole seconds, for one token to refill.
func (rl *RateLimiter) retryAfter() int {
	if rl.rps <= 0 {
		return 0
	}
	s := int(math.Ceil(1 / float64(rl.rps)))
	if s < 1 {
		s = 1
	}
	return s
}

// Middleware rejects requests over the limit with 429.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if !rl.Allow(ip) {
				if rl.l != nil {
					rl.l.Warn("rate limit exceeded", applogger.String("ip", ip), applogger.String("route", c.Path()))
				}
				return AppErrorResponse(c, TooManyRequestsError("rate limit exceeded").WithParam("retry_after_seconds", rl.retryAfter()))
			}
			return next(c)
		}
	}
}
