package security

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"job-board-backend/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

// LoginTrackerConfig holds configuration for login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // Failed attempts before a block
	AttemptWindow time.Duration // Window the failures are counted in
	BlockDuration time.Duration // How long a block lasts
}

// DefaultLoginTrackerConfig returns sensible defaults
func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
	}
}

// Redis key patterns
const (
	failLoginPrefix    = "fail:login:user:"
	blockedLoginPrefix = "blocked:login:user:"
)

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: current count after increment
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

type attemptWindow struct {
	count        int
	resetAt      time.Time
	blockedUntil time.Time
}

// LoginTracker counts failed logins per email and blocks the email once the
// limit is reached. Counters live in Redis when it is available and in
// process memory otherwise.
type LoginTracker struct {
	config LoginTrackerConfig
	logger *SecurityLogger
	client func() *goredis.Client
	now    func() time.Time

	mu     sync.Mutex
	memory map[string]*attemptWindow
}

// NewLoginTracker creates a new login tracker with the given config
func NewLoginTracker(config LoginTrackerConfig, logger *SecurityLogger) *LoginTracker {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = DefaultLoginTrackerConfig().MaxAttempts
	}
	if config.AttemptWindow <= 0 {
		config.AttemptWindow = DefaultLoginTrackerConfig().AttemptWindow
	}
	if config.BlockDuration <= 0 {
		config.BlockDuration = DefaultLoginTrackerConfig().BlockDuration
	}
	if logger == nil {
		logger = DefaultLogger()
	}
	return &LoginTracker{
		config: config,
		logger: logger,
		client: redis.Client,
		now:    time.Now,
		memory: make(map[string]*attemptWindow),
	}
}

// NewMemoryLoginTracker never touches Redis.
func NewMemoryLoginTracker(config LoginTrackerConfig, logger *SecurityLogger) *LoginTracker {
	lt := NewLoginTracker(config, logger)
	lt.client = func() *goredis.Client { return nil }
	return lt
}

// IsBlocked reports whether the email is currently blocked. Redis errors fail
// open.
func (lt *LoginTracker) IsBlocked(ctx context.Context, email string) bool {
	email = normalizeEmail(email)

	if client := lt.client(); client != nil {
		exists, err := client.Exists(ctx, blockedLoginPrefix+email).Result()
		if err != nil {
			lt.logger.zapLogger.Warn("login tracker: block lookup failed")
			return false
		}
		return exists > 0
	}

	lt.mu.Lock()
	defer lt.mu.Unlock()
	w, ok := lt.memory[email]
	return ok && lt.now().Before(w.blockedUntil)
}

// RecordFailure counts one failed attempt and reports whether the email is
// now blocked.
func (lt *LoginTracker) RecordFailure(ctx context.Context, email string) bool {
	email = normalizeEmail(email)
	lt.logger.LogLoginFailed(ctx, email, "invalid_credentials")

	var count int
	if client := lt.client(); client != nil {
		n, err := lt.atomicIncrement(ctx, client, failLoginPrefix+email, int(lt.config.AttemptWindow.Seconds()))
		if err != nil {
			lt.logger.zapLogger.Warn("login tracker: increment failed")
			return false
		}
		count = n
	} else {
		count = lt.incrementMemory(email)
	}

	if count < lt.config.MaxAttempts {
		return false
	}

	lt.block(ctx, email)
	return true
}

// Reset clears the failure counter after a successful login.
func (lt *LoginTracker) Reset(ctx context.Context, email string) {
	email = normalizeEmail(email)

	if client := lt.client(); client != nil {
		_ = client.Del(ctx, failLoginPrefix+email).Err()
		return
	}

	lt.mu.Lock()
	defer lt.mu.Unlock()
	if w, ok := lt.memory[email]; ok && !lt.now().Before(w.blockedUntil) {
		delete(lt.memory, email)
	}
}

func (lt *LoginTracker) incrementMemory(email string) int {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	now := lt.now()
	w, ok := lt.memory[email]
	if !ok || !now.Before(w.resetAt) {
		w = &attemptWindow{resetAt: now.Add(lt.config.AttemptWindow), blockedUntil: blockedUntilOf(w)}
		lt.memory[email] = w
	}
	w.count++
	return w.count
}

func blockedUntilOf(w *attemptWindow) time.Time {
	if w == nil {
		return time.Time{}
	}
	return w.blockedUntil
}

func (lt *LoginTracker) block(ctx context.Context, email string) {
	if client := lt.client(); client != nil {
		if err := client.Set(ctx, blockedLoginPrefix+email, "1", lt.config.BlockDuration).Err(); err != nil {
			lt.logger.zapLogger.Warn("login tracker: failed to set block")
			return
		}
	} else {
		lt.mu.Lock()
		if w, ok := lt.memory[email]; ok {
			w.blockedUntil = lt.now().Add(lt.config.BlockDuration)
			w.count = 0
		}
		lt.mu.Unlock()
	}

	lt.logger.LogBlockCreated(ctx, email, lt.config.BlockDuration)
}

// atomicIncrement performs an atomic increment with TTL using Lua script
func (lt *LoginTracker) atomicIncrement(ctx context.Context, client *goredis.Client, key string, ttlSeconds int) (int, error) {
	result, err := client.Eval(ctx, incrWithTTLScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, err
	}
	count, ok := result.(int64)
	if !ok {
		return 0, errors.New("unexpected result type from Lua script")
	}
	return int(count), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
