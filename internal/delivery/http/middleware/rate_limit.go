package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/pkg/redis"
	"job-board-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
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

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	count   int
	resetAt time.Time
	mu      sync.Mutex
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

func clientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

// GlobalRateLimitConfig applies to every route.
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:ip:",
		FailClosed: false, // Fail open by default for availability
		KeyFunc:    clientIPKey,
	}
}

// LoginRateLimitConfig returns strict config for login and registration
func LoginRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:login:",
		FailClosed: true,
		KeyFunc:    clientIPKey,
	}
}

// UploadRateLimitConfig returns config for resume upload endpoints
func UploadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Limit:      10,              // 10 uploads
		Window:     1 * time.Minute, // per minute
		KeyPrefix:  "rl:upload:",
		FailClosed: false,
		KeyFunc:    clientIPKey,
	}
}

type rateLimiter struct {
	config RateLimitConfig
	client func() *goredis.Client
	secLog *security.SecurityLogger

	memory    sync.Map
	sweepMu   sync.Mutex
	lastSweep time.Time
}

const sweepInterval = 5 * time.Minute

// RateLimitMiddleware creates a rate limiting middleware with the given config.
// Uses Redis when available, falls back to process memory when not.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	return newRateLimiter(config, redis.Client, security.DefaultLogger()).handle
}

func newRateLimiter(config RateLimitConfig, client func() *goredis.Client, secLog *security.SecurityLogger) *rateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = clientIPKey
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	return &rateLimiter{config: config, client: client, secLog: secLog}
}

func (rl *rateLimiter) handle(c *gin.Context) {
	fullKey := rl.config.KeyPrefix + rl.config.KeyFunc(c)
	now := time.Now()

	var count int
	var resetAt time.Time

	if client := rl.client(); client != nil {
		var err error
		count, resetAt, err = checkRateLimitRedis(c.Request.Context(), client, fullKey, rl.config)
		if err != nil {
			if rl.config.FailClosed {
				rl.logError(c, "redis_error", err)
				response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
				c.Abort()
				return
			}
			count, resetAt = rl.checkInMemory(fullKey, now)
		}
	} else {
		count, resetAt = rl.checkInMemory(fullKey, now)
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
	c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

	if count > rl.config.Limit {
		retryAfter := int(time.Until(resetAt).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Header("X-RateLimit-Remaining", "0")
		c.Header("Retry-After", strconv.Itoa(retryAfter))

		rl.secLog.LogRateLimitTriggered(
			c.Request.Context(),
			c.ClientIP(),
			c.GetHeader("User-Agent"),
			c.GetString(RequestIDKey),
			c.FullPath(),
		)

		response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
		c.Abort()
		return
	}

	c.Header("X-RateLimit-Remaining", strconv.Itoa(rl.config.Limit-count))
	c.Next()
}

// checkRateLimitRedis checks rate limit using Redis with atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, config RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
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

func (rl *rateLimiter) checkInMemory(key string, now time.Time) (int, time.Time) {
	rl.sweep(now)

	entryI, _ := rl.memory.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(rl.config.Window)})
	entry := entryI.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(rl.config.Window)
	}
	entry.count++

	return entry.count, entry.resetAt
}

// sweep drops expired counters at most once per sweepInterval.
func (rl *rateLimiter) sweep(now time.Time) {
	rl.sweepMu.Lock()
	if now.Sub(rl.lastSweep) < sweepInterval {
		rl.sweepMu.Unlock()
		return
	}
	rl.lastSweep = now
	rl.sweepMu.Unlock()

	rl.memory.Range(func(key, value interface{}) bool {
		entry := value.(*rateLimitEntry)
		entry.mu.Lock()
		if now.After(entry.resetAt) {
			rl.memory.Delete(key)
		}
		entry.mu.Unlock()
		return true
	})
}

func (rl *rateLimiter) logError(c *gin.Context, errorType string, err error) {
	rl.secLog.Log(c.Request.Context(), security.SecurityEvent{
		Event:       security.EventRateLimitTriggered,
		SubjectType: "system",
		IP:          c.ClientIP(),
		Details: map[string]interface{}{
			"error_type": errorType,
			"error":      err.Error(),
		},
	})
}
