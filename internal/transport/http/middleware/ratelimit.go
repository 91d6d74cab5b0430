package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/ErlanBelekov/estate-listings/internal/metrics"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterCleanupInterval = 5 * time.Minute

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	limiters sync.Map // map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
	logger   *slog.Logger

	mu          sync.Mutex
	lastCleanup time.Time
}

// NewRateLimiter allows perMinute requests per IP, all of them available as a burst.
func NewRateLimiter(perMinute int, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{
		limit:       rate.Limit(float64(perMinute) / time.Minute.Seconds()),
		burst:       perMinute,
		logger:      logger.With("component", "rate_limiter"),
		lastCleanup: time.Now(),
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		limiter := rl.limiter(key)

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			delay := reservation.Delay()
			reservation.Cancel()

			retryAfter := max(int(delay.Seconds()), 1)
			path := c.FullPath()
			if path == "" {
				path = "unknown"
			}
			metrics.RateLimitedTotal.WithLabelValues(path).Inc()
			rl.logger.WarnContext(c.Request.Context(), "rate limit exceeded",
				"ip", key,
				"path", path,
				"retry_after", retryAfter,
			)

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"detail": "Request was throttled. Expected available in " + strconv.Itoa(retryAfter) + " seconds.",
			})
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	if l, ok := rl.limiters.Load(key); ok {
		return l.(*rate.Limiter)
	}

	actual, _ := rl.limiters.LoadOrStore(key, rate.NewLimiter(rl.limit, rl.burst))
	rl.maybeCleanup()
	return actual.(*rate.Limiter)
}

// maybeCleanup drops limiters whose bucket has refilled, i.e. idle clients.
func (rl *RateLimiter) maybeCleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if time.Since(rl.lastCleanup) < limiterCleanupInterval {
		return
	}
	rl.lastCleanup = time.Now()

	rl.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(rl.burst) {
			rl.limiters.Delete(key)
		}
		return true
	})
}
