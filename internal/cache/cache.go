// Package cache keeps contract read models in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/salesdesk/internal/contract"
)

const keyPrefix = "salesdesk:contract:"

// Client is the subset of the Redis API the cache uses.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Connect opens a Redis client and checks it answers.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return rdb, nil
}

// Contracts is a contract.SnapshotCache. Failures are logged and treated as misses; a nil
// *Contracts caches nothing.
type Contracts struct {
	client Client
	ttl    time.Duration
}

var _ contract.SnapshotCache = (*Contracts)(nil)

func NewContracts(client Client, ttl time.Duration) *Contracts {
	return &Contracts{client: client, ttl: ttl}
}

func key(id uuid.UUID) string {
	return keyPrefix + id.String()
}

func (c *Contracts) Get(ctx context.Context, id uuid.UUID) (*contract.Contract, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("contract cache read failed", "contract_id", id, "error", err)
		}

		return nil, false
	}

	var out contract.Contract
	if err := json.Unmarshal(raw, &out); err != nil {
		slog.Warn("discarding unreadable cached contract", "contract_id", id, "error", err)
		c.Delete(ctx, id)

		return nil, false
	}

	return &out, true
}

func (c *Contracts) Set(ctx context.Context, ct *contract.Contract) {
	if c == nil || c.client == nil || ct == nil {
		return
	}

	raw, err := json.Marshal(ct)
	if err != nil {
		slog.Warn("contract cache encode failed", "contract_id", ct.ID, "error", err)
		return
	}

	if err := c.client.Set(ctx, key(ct.ID), raw, c.ttl).Err(); err != nil {
		slog.Warn("contract cache write failed", "contract_id", ct.ID, "error", err)
	}
}

func (c *Contracts) Delete(ctx context.Context, id uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		slog.Warn("contract cache invalidation failed", "contract_id", id, "error", err)
	}
}
