// Package session keeps one cart view machine per shopping session and
// persists guest carts so they survive process restarts for the length
// of the session TTL.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/davitama/storefront/cartview"
	"github.com/redis/go-redis/v9"
)

// Store persists guest cart snapshots by session ID.
type Store interface {
	Get(ctx context.Context, sessionID string) ([]cartview.Line, error)
	Set(ctx context.Context, sessionID string, lines []cartview.Line) error
	Delete(ctx context.Context, sessionID string) error
}

// RedisStore keeps guest carts in Redis under a per-session key with a
// TTL, refreshed on every write.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a new RedisStore.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) getKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) ([]cartview.Line, error) {
	data, err := s.client.Get(ctx, s.getKey(sessionID)).Result()
	if err == redis.Nil {
		// No guest cart for this session
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []cartview.Line
	if err := json.Unmarshal([]byte(data), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID string, lines []cartview.Line) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.getKey(sessionID), data, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.getKey(sessionID)).Err()
}

// MemoryStore is an in-process Store for development and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]cartview.Line
}

// NewMemoryStore creates a new MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]cartview.Line)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) ([]cartview.Line, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lines, ok := s.carts[sessionID]
	if !ok {
		return nil, nil
	}
	out := make([]cartview.Line, len(lines))
	copy(out, lines)
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID string, lines []cartview.Line) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]cartview.Line, len(lines))
	copy(stored, lines)
	s.carts[sessionID] = stored
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}
