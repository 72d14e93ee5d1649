package redis

// Package redis provides Redis-based adapters for the accounts UI.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	domainauth "github.com/target/mmk-accounts-ui/internal/domain/auth"
	apperrors "github.com/target/mmk-accounts-ui/internal/errors"
)

const (
	// DefaultPrefix namespaces token slots.
	DefaultPrefix = "accounts:token:"
	scanBatch     = 200
)

// TokenStore keeps one bearer token slot per session key in Redis.
// Slot TTLs follow TokenSlot.ExpiresAt so Redis evicts stale tokens on its own.
type TokenStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewTokenStore creates a Redis token store with the default key prefix.
func NewTokenStore(client redis.UniversalClient) *TokenStore {
	return NewTokenStoreWithPrefix(client, DefaultPrefix)
}

// NewTokenStoreWithPrefix creates a Redis token store with a custom key prefix.
func NewTokenStoreWithPrefix(client redis.UniversalClient, prefix string) *TokenStore {
	return &TokenStore{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

// Save writes the slot under key, replacing any previous token.
func (s *TokenStore) Save(ctx context.Context, key string, slot domainauth.TokenSlot) error {
	if key == "" {
		return errors.New("token slot key cannot be empty")
	}
	if slot.Token == "" {
		return errors.New("token cannot be empty")
	}

	var ttl time.Duration
	if !slot.ExpiresAt.IsZero() {
		ttl = slot.ExpiresAt.Sub(s.now())
		if ttl <= 0 {
			return errors.New("token slot is already expired")
		}
	}

	data, err := json.Marshal(slot)
	if err != nil {
		return fmt.Errorf("marshal token slot: %w", err)
	}
	return s.client.Set(ctx, s.prefix+key, data, ttl).Err()
}

// Get returns the slot stored under key.
func (s *TokenStore) Get(ctx context.Context, key string) (domainauth.TokenSlot, error) {
	if key == "" {
		return domainauth.TokenSlot{}, apperrors.NotFound("token slot not found")
	}

	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.TokenSlot{}, apperrors.NotFound("token slot not found")
		}
		return domainauth.TokenSlot{}, fmt.Errorf("redis get: %w", err)
	}

	var slot domainauth.TokenSlot
	if unmarshalErr := json.Unmarshal(data, &slot); unmarshalErr != nil {
		return domainauth.TokenSlot{}, fmt.Errorf("unmarshal token slot: %w", unmarshalErr)
	}

	if slot.Expired(s.now()) {
		if deleteErr := s.Delete(ctx, key); deleteErr != nil {
			return domainauth.TokenSlot{}, fmt.Errorf("cleanup expired token slot: %w", deleteErr)
		}
		return domainauth.TokenSlot{}, apperrors.NotFound("token slot expired")
	}

	return slot, nil
}

// Delete removes the slot. Deleting a missing slot is not an error.
func (s *TokenStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+key).Err()
}

// SlotInfo describes a stored slot without exposing the token.
type SlotInfo struct {
	Key string
	TTL time.Duration
}

// List returns every slot key under the store prefix with its remaining TTL.
// A TTL of -1 means the slot never expires.
func (s *TokenStore) List(ctx context.Context) ([]SlotInfo, error) {
	var out []SlotInfo
	err := s.scan(ctx, func(fullKey string) error {
		ttl, err := s.client.TTL(ctx, fullKey).Result()
		if err != nil {
			return fmt.Errorf("redis ttl %s: %w", fullKey, err)
		}
		out = append(out, SlotInfo{Key: strings.TrimPrefix(fullKey, s.prefix), TTL: ttl})
		return nil
	})
	return out, err
}

// Purge deletes every slot under the store prefix and returns how many were removed.
func (s *TokenStore) Purge(ctx context.Context) (int, error) {
	removed := 0
	err := s.scan(ctx, func(fullKey string) error {
		n, err := s.client.Del(ctx, fullKey).Result()
		if err != nil {
			return fmt.Errorf("redis del %s: %w", fullKey, err)
		}
		removed += int(n)
		return nil
	})
	return removed, err
}

func (s *TokenStore) scan(ctx context.Context, fn func(fullKey string) error) error {
	iter := s.client.Scan(ctx, 0, s.prefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		if err := fn(iter.Val()); err != nil {
			return err
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	return nil
}
