package middleware

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/aircooling/backoffice/internal/httperr"
	"github.com/aircooling/backoffice/internal/logging"
)

// Counter increments a key that expires after window and returns its value.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type RedisCounter struct {
	rdb *redis.Client
}

func NewRedisCounter(rdb *redis.Client) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := r.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// RateLimit is a fixed-window limiter keyed by route and client IP. State
// lives in the counter store, never in process memory. Counter failures let
// the request through.
func RateLimit(counter Counter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil || limit <= 0 || window <= 0 {
			c.Next()
			return
		}

		bucket := time.Now().UnixNano() / window.Nanoseconds()
		key := fmt.Sprintf("ratelimit:%s:%s:%d", c.FullPath(), c.ClientIP(), bucket)

		n, err := counter.Incr(c.Request.Context(), key, window)
		if err != nil {
			logging.FromContext(c).Warn("rate_limit_unavailable", zap.Error(err))
			c.Next()
			return
		}

		if n > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(retryAfter(window)))
			httperr.Abort(c, httperr.New(
				httperr.KindRateLimited,
				"rate_limited",
				"Trop de requêtes, réessayez plus tard.",
			))
			return
		}

		c.Next()
	}
}

// retryAfter is the window in whole seconds, rounded up and never zero.
func retryAfter(window time.Duration) int {
	return max(1, int(math.Ceil(window.Seconds())))
}
