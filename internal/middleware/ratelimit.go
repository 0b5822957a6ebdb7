package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Augusto140/Englife-server/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter holds one token bucket per client IP.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[ip]
	rl.mu.RUnlock()

	if exists {
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists = rl.limiters[ip]
	if exists {
		return limiter
	}

	limiter = rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters[ip] = limiter
	return limiter
}

// Sweep drops the limiters of clients whose bucket has refilled.
func (rl *RateLimiter) Sweep(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, limiter := range rl.limiters {
		if limiter.TokensAt(now) >= float64(rl.burst) {
			delete(rl.limiters, ip)
		}
	}
}

func (rl *RateLimiter) size() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.limiters)
}

func (rl *RateLimiter) sweepEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.Sweep(now)
		}
	}
}

// RateLimitMiddleware answers 429 once a client exhausts its bucket. API
// clients get JSON, browsers a plain message. Idle buckets are swept until
// ctx is cancelled.
func RateLimitMiddleware(ctx context.Context, rps float64, burst int) gin.HandlerFunc {
	limiter := NewRateLimiter(rps, burst)
	go limiter.sweepEvery(ctx, 10*time.Minute)
	return rateLimitHandler(limiter)
}

func rateLimitHandler(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if limiter.getLimiter(ip).Allow() {
			c.Next()
			return
		}

		logger.Warn("Rate limit exceeded",
			zap.String("request_id", GetRequestID(c)),
			zap.String("ip", ip),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)

		abortWithMessage(c, http.StatusTooManyRequests, "Muitas requisições, tente novamente em instantes")
	}
}
