package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	backend "github.com/redis/go-redis/v9"

	"github.com/matzehuels/hierview/pkg/cache"
)

// RedisStore keeps states in Redis. Keys expire with the state, and a
// sorted set scored by expiry indexes live ids for List.
type RedisStore struct {
	client *backend.Client
	keyer  cache.Keyer
}

// Option configures a RedisStore.
type Option func(*RedisStore)

// WithKeyer derives keys from k instead of the default keyer.
func WithKeyer(k cache.Keyer) Option {
	return func(s *RedisStore) { s.keyer = k }
}

// NewRedisStore creates a store from an existing client.
func NewRedisStore(client *backend.Client, opts ...Option) *RedisStore {
	s := &RedisStore{client: client, keyer: cache.NewDefaultKeyer()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(id string) string { return s.keyer.SessionKey(id) }

func (s *RedisStore) indexKey() string { return s.keyer.SessionKey("index") }

func (s *RedisStore) Get(ctx context.Context, id string) (*ViewState, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	val, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session from redis: %w", err)
	}

	var st ViewState
	if err := json.Unmarshal(val, &st); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	if st.IsExpired() {
		return nil, nil
	}
	return &st, nil
}

// Set stores the state with a TTL matching its expiry. An already expired
// state is deleted instead.
func (s *RedisStore) Set(ctx context.Context, st *ViewState) error {
	if err := ValidateID(st.ID); err != nil {
		return err
	}
	ttl := time.Until(st.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, st.ID)
	}

	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(st.ID), data, ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  float64(st.ExpiresAt.Unix()),
		Member: st.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session to redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)
	_, err := pipe.Exec(ctx)
	return err
}

// List prunes expired ids from the index and returns the rest in expiry
// order.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	now := strconv.FormatInt(time.Now().Unix(), 10)
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", "("+now).Err(); err != nil {
		return nil, fmt.Errorf("prune expired sessions: %w", err)
	}
	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return ids, nil
}

// Close closes the redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
