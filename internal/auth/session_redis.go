package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore keeps shop sessions in redis so they survive restarts and
// are shared between instances.
type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func (s *RedisSessionStore) Get(ctx context.Context, shop string) (Session, error) {
	data, err := s.rdb.Get(ctx, sessionKeyPrefix+shop).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("loading session for shop %s: %w", shop, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("decoding session for shop %s: %w", shop, err)
	}
	return sess, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, shop string, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session for shop %s: %w", shop, err)
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+shop, data, 0).Err(); err != nil {
		return fmt.Errorf("storing session for shop %s: %w", shop, err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, shop string) error {
	if err := s.rdb.Del(ctx, sessionKeyPrefix+shop).Err(); err != nil {
		return fmt.Errorf("deleting session for shop %s: %w", shop, err)
	}
	return nil
}

func (s *RedisSessionStore) Shops(ctx context.Context) ([]string, error) {
	var shops []string
	iter := s.rdb.Scan(ctx, 0, sessionKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		shops = append(shops, strings.TrimPrefix(iter.Val(), sessionKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scanning sessions: %w", err)
	}
	return shops, nil
}
