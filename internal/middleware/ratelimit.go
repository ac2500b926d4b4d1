package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/sandeep-atiya/Ameyo-crm/internal/respond"
)

// rateLimitWindow is the fixed window shared by all limiter classes.
const rateLimitWindow = 15 * time.Minute

// RateLimiter is a fixed-window request limiter backed by Redis, keyed by
// client IP and route class. A Redis outage fails open: limiting is a
// protection, not a correctness requirement.
type RateLimiter struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRateLimiter creates a new RateLimiter instance.
func NewRateLimiter(client *redis.Client, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		logger: logger,
	}
}

// Limit returns middleware that allows at most max requests per client IP
// within the window for the given route class.
func (l *RateLimiter) Limit(class string, max int) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		window := time.Now().Unix() / int64(rateLimitWindow.Seconds())
		key := fmt.Sprintf("ratelimit:%s:%s:%d", class, c.ClientIP(), window)

		count, err := l.client.Incr(ctx, key).Result()
		if err != nil {
			l.logger.Warn("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			l.client.Expire(ctx, key, rateLimitWindow)
		}

		if count > int64(max) {
			l.logger.Warn("rate limit exceeded", "class", class, "ip", c.ClientIP())
			retryAfter := rateLimitWindow - time.Duration(time.Now().Unix()%int64(rateLimitWindow.Seconds()))*time.Second
			c.Header("Retry-After", strconv.FormatInt(int64(retryAfter.Seconds()), 10))
			respond.Error(c, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}
