// Package cache stores computed results keyed by a hash of their inputs.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/iwvelando/moneywiki/internal/config"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Repository is a byte-oriented key/value store with per-entry expiry.
// A zero TTL means the entry does not expire.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

const keyPrefix = "moneywiki"

// Key derives a stable key for input under namespace.
func Key(namespace string, input any) (string, error) {
	data, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("failed to encode cache key input: %w", err)
	}
	sum := sha256.Sum256(data)
	return keyPrefix + ":" + namespace + ":" + hex.EncodeToString(sum[:]), nil
}

// GetJSON reads and decodes a cached value into dst.
func GetJSON(ctx context.Context, repo Repository, key string, dst any) error {
	data, err := repo.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode cached value %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes value and stores it.
func SetJSON(ctx context.Context, repo Repository, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}
	return repo.Set(ctx, key, data, ttl)
}

// FromConfig returns a Redis repository when an address is configured,
// otherwise a bounded in-memory one.
func FromConfig(cfg config.CacheConfig) Repository {
	if cfg.RedisAddr != "" {
		return NewRedis(cfg.RedisAddr)
	}
	return NewMemory(cfg.MaxEntries)
}
