package persist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sadat/internal/models"
	"sadat/internal/observability"

	"github.com/redis/go-redis/v9"
)

// RedisAdapter persists the snapshot as a single Redis key.
type RedisAdapter struct {
	client *redis.Client
	slot   string
	log    *observability.Logger
}

// NewRedis connects to Redis at addr (host:port or redis:// URL) and binds
// the adapter to the given slot name.
func NewRedis(addr, slot string) (*RedisAdapter, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url %q: %w", addr, err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisAdapter{
		client: client,
		slot:   slot,
		log:    observability.NewLogger("persist.redis"),
	}, nil
}

// NewRedisWithClient binds the adapter to an existing client. Used by tests
// with miniredis.
func NewRedisWithClient(client *redis.Client, slot string) *RedisAdapter {
	return &RedisAdapter{
		client: client,
		slot:   slot,
		log:    observability.NewLogger("persist.redis"),
	}
}

// Load reads and decodes the slot's snapshot key.
func (a *RedisAdapter) Load(ctx context.Context) (*models.State, error) {
	data, err := a.client.Get(ctx, a.slot).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", a.slot, err)
	}
	state, err := Decode(data)
	if errors.Is(err, ErrNoSnapshot) {
		a.log.Warn("snapshot payload malformed, resetting to defaults", "slot", a.slot)
	}
	return state, err
}

// Save writes the slot's snapshot key. Snapshots never expire.
func (a *RedisAdapter) Save(ctx context.Context, state *models.State) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}
	return a.client.Set(ctx, a.slot, data, 0).Err()
}

// Clear deletes the slot's snapshot key.
func (a *RedisAdapter) Clear(ctx context.Context) error {
	return a.client.Del(ctx, a.slot).Err()
}
