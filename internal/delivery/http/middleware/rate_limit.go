package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis (default: "rl:ip:")
	KeyPrefix string
	// Whether to fail closed (reject) when Redis is unavailable
	FailClosed bool
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

var rateLimitScript = goredis.NewScript(rateLimitLuaScript)

// DefaultRateLimitConfig returns sensible defaults for API rate limiting
func DefaultRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	if limit <= 0 {
		limit = 100
	}
	if window <= 0 {
		window = time.Minute
	}
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:ip:",
		FailClosed: false, // Fail open by default for availability
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// WriteRateLimitConfig is the stricter budget for state-changing endpoints.
func WriteRateLimitConfig(base RateLimitConfig) RateLimitConfig {
	cfg := base
	cfg.Limit = max(base.Limit/4, 1)
	cfg.KeyPrefix = "rl:write:"
	return cfg
}

type localLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter counts requests in Redis when a client is configured and falls back to
// per-key token buckets in process memory otherwise.
type RateLimiter struct {
	redis *goredis.Client

	mu    sync.Mutex
	local map[string]*localLimiter
}

func NewRateLimiter(client *goredis.Client) *RateLimiter {
	return &RateLimiter{
		redis: client,
		local: make(map[string]*localLimiter),
	}
}

// Middleware creates a rate limiting middleware with the given config
func (rl *RateLimiter) Middleware(config RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)

		var (
			remaining int
			resetAt   time.Time
			allowed   bool
		)

		if rl.redis != nil {
			count, reset, err := rl.checkRedis(c.Request.Context(), fullKey, config)
			if err == nil {
				allowed = count <= config.Limit
				remaining = max(config.Limit-count, 0)
				resetAt = reset
			} else {
				logger.Log.Warn("rate limit store unavailable", "error", err, "key_prefix", config.KeyPrefix)
				if config.FailClosed {
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
				allowed, remaining, resetAt = rl.checkLocal(fullKey, config, time.Now())
			}
		} else {
			allowed, remaining, resetAt = rl.checkLocal(fullKey, config, time.Now())
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.UTC().Format(time.RFC3339))

		if !allowed {
			retryAfter := max(int(time.Until(resetAt).Seconds()), 1)
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Warn("rate limit triggered",
				"ip", c.ClientIP(),
				"path", c.FullPath(),
				"request_id", response.RequestID(c),
			)
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// checkRedis checks rate limit using Redis with atomic Lua script
func (rl *RateLimiter) checkRedis(ctx context.Context, key string, config RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())

	result, err := rateLimitScript.Run(ctx, rl.redis, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	// Parse result [count, ttl]
	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}

// checkLocal spends one token from the key's bucket. The bucket refills at
// Limit per Window with a burst of Limit.
func (rl *RateLimiter) checkLocal(key string, config RateLimitConfig, now time.Time) (bool, int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.local[key]
	if !ok {
		every := config.Window / time.Duration(config.Limit)
		entry = &localLimiter{limiter: rate.NewLimiter(rate.Every(every), config.Limit)}
		rl.local[key] = entry
	}
	entry.lastSeen = now

	allowed := entry.limiter.AllowN(now, 1)
	tokens := entry.limiter.TokensAt(now)
	remaining := max(int(tokens), 0)

	// Time until the bucket holds one token again
	var resetAt time.Time
	if tokens >= 1 {
		resetAt = now
	} else {
		resetAt = now.Add(time.Duration((1 - tokens) * float64(config.Window) / float64(config.Limit)))
	}

	return allowed, remaining, resetAt
}

// Sweep drops in-memory buckets that have been idle for longer than idle.
func (rl *RateLimiter) Sweep(now time.Time, idle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for key, entry := range rl.local {
		if now.Sub(entry.lastSeen) > idle {
			delete(rl.local, key)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep periodically until ctx is done.
func (rl *RateLimiter) StartSweeper(ctx context.Context, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				rl.Sweep(now, every)
			}
		}
	}()
}
