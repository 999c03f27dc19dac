package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the markers under a single key that expires after TTL.
type RedisStore struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
	Key      string
}

func NewRedisStore(cfg RedisConfig) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	key := cfg.Key
	if key == "" {
		key = "speaklexi:session"
	}

	return &RedisStore{
		rdb: rdb,
		key: key,
		ttl: cfg.TTL,
	}
}

func (r *RedisStore) Save(ctx context.Context, m Markers) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("serialize session: %w", err)
	}

	if err := r.rdb.Set(ctx, r.key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("store session in redis: %w", err)
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context) (Markers, error) {
	val, err := r.rdb.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Markers{}, ErrNoSession
		}
		return Markers{}, fmt.Errorf("retrieve session from redis: %w", err)
	}

	var m Markers
	if err := json.Unmarshal(val, &m); err != nil {
		return Markers{}, fmt.Errorf("deserialize session: %w", err)
	}
	return m, nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("delete session from redis: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.rdb.Close()
}
