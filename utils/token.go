package utils

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenBlacklist remembers revoked token ids until they would have expired anyway.
type TokenBlacklist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type MemoryBlacklist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{entries: make(map[string]time.Time)}
}

func (b *MemoryBlacklist) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[tokenID] = expiresAt
	b.cleanupLocked(time.Now())
	return nil
}

func (b *MemoryBlacklist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	expiry, exists := b.entries[tokenID]
	return exists && time.Now().Before(expiry), nil
}

// Bersihkan token kadaluarsa
func (b *MemoryBlacklist) cleanupLocked(now time.Time) {
	for id, expiry := range b.entries {
		if now.After(expiry) {
			delete(b.entries, id)
		}
	}
}

type RedisBlacklist struct {
	client *redis.Client
	prefix string
}

func NewRedisBlacklist(client *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{client: client, prefix: "frontdesk:revoked:"}
}

func (b *RedisBlacklist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, b.prefix+tokenID, 1, ttl).Err()
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := b.client.Get(ctx, b.prefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
