package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix    = "productfinder:session:"
	maxUpdateAttempts = 5
)

// RedisStore keeps sessions as JSON values with a sliding expiry.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// OpenRedis parses a redis:// URL, connects and pings the server.
func OpenRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

// Create stores a new session.
func (r *RedisStore) Create(ctx context.Context, s Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisKey(s.ID), payload, r.ttl).Err()
}

// Get returns a stored session.
func (r *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	return decode(r.client.Get(ctx, redisKey(id)))
}

// Update applies fn inside a WATCH transaction, retrying when another
// writer touched the key in between.
func (r *RedisStore) Update(ctx context.Context, id string, fn func(*Session) error) (Session, error) {
	key := redisKey(id)
	var updated Session
	txf := func(tx *redis.Tx) error {
		s, err := decode(tx.Get(ctx, key))
		if err != nil {
			return err
		}
		if err := fn(&s); err != nil {
			return err
		}
		payload, err := json.Marshal(s)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		if err == nil {
			updated = s
		}
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return Session{}, err
		}
		return updated, nil
	}
	return Session{}, ErrConflict
}

// Ping checks the connection.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func decode(cmd *redis.StringCmd) (Session, error) {
	raw, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}
