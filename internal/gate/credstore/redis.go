package credstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/herfa/gate/internal/gate/domain"
	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the redis-backed session area.
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	Prefix   string
}

type redisArea struct {
	client *redis.Client
	prefix string
}

// NewRedisArea constructs a redis-backed session area. Rows carry their own
// expiry, which becomes the redis TTL, so the area self-cleans.
func NewRedisArea(cfg RedisConfig) (Area, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "gate:credential:"
	}

	return &redisArea{client: client, prefix: prefix}, nil
}

func (a *redisArea) key(k string) string { return a.prefix + k }

func (a *redisArea) Put(ctx context.Context, row domain.CredentialRow) error {
	data, err := json.Marshal(row)
	if err != nil {
		return err
	}

	ttl := time.Until(row.ExpiresAt)
	if ttl <= 0 {
		// Past-dated rows are never persisted; Store.Save guards this,
		// but a direct caller gets the same refusal.
		return fmt.Errorf("credential row already expired")
	}

	return a.client.Set(ctx, a.key(row.Key), data, ttl).Err()
}

func (a *redisArea) Get(ctx context.Context, key string) (domain.CredentialRow, error) {
	raw, err := a.client.Get(ctx, a.key(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return domain.CredentialRow{}, ErrAbsent
		}
		return domain.CredentialRow{}, err
	}

	var row domain.CredentialRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return domain.CredentialRow{}, err
	}
	return row, nil
}

func (a *redisArea) Delete(ctx context.Context, key string) error {
	return a.client.Del(ctx, a.key(key)).Err()
}
