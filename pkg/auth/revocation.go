package auth

import (
	"context"
	"sync"
	"time"

	"job-board-backend/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

const revokedTokenPrefix = "revoked:token:"

// RevocationStore remembers logged-out token ids until the token would have
// expired anyway. It uses the shared Redis client when available and an
// in-process map otherwise.
type RevocationStore struct {
	client func() *goredis.Client
	now    func() time.Time

	mu     sync.Mutex
	memory map[string]time.Time
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{
		client: redis.Client,
		now:    time.Now,
		memory: make(map[string]time.Time),
	}
}

// NewMemoryRevocationStore never touches Redis.
func NewMemoryRevocationStore() *RevocationStore {
	s := NewRevocationStore()
	s.client = func() *goredis.Client { return nil }
	return s
}

func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(s.now())
	if tokenID == "" || ttl <= 0 {
		return nil
	}

	if c := s.client(); c != nil {
		return c.Set(ctx, revokedTokenPrefix+tokenID, "1", ttl).Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.memory[tokenID] = until
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}

	if c := s.client(); c != nil {
		n, err := c.Exists(ctx, revokedTokenPrefix+tokenID).Result()
		if err != nil {
			return false, err
		}
		return n > 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.memory[tokenID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(until) {
		delete(s.memory, tokenID)
		return false, nil
	}
	return true, nil
}

func (s *RevocationStore) sweepLocked() {
	now := s.now()
	for id, until := range s.memory {
		if !now.Before(until) {
			delete(s.memory, id)
		}
	}
}
