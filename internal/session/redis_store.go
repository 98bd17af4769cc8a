package session

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"projectboard/internal/model"
)

const (
	redisTokenKey = "session:" + tokenKey
	redisUserKey  = "session:" + userKey
)

// RedisStore keeps the session in Redis for deployments that already run
// one. Same contract as FileStore: absence and malformed records are
// reported as "no session", never as errors.
type RedisStore struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewRedisStore(rdb *redis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{rdb: rdb, logger: logger}
}

func (s *RedisStore) Token(ctx context.Context) (string, bool) {
	token, err := s.rdb.Get(ctx, redisTokenKey).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("Redis token read failed", zap.Error(err))
		}
		return "", false
	}
	if token == "" {
		return "", false
	}
	return token, true
}

func (s *RedisStore) SetToken(ctx context.Context, token string) error {
	return s.rdb.Set(ctx, redisTokenKey, token, 0).Err()
}

func (s *RedisStore) User(ctx context.Context) (*model.User, bool) {
	raw, err := s.rdb.Get(ctx, redisUserKey).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("Redis user read failed", zap.Error(err))
		}
		return nil, false
	}

	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.logger.Warn("Failed to parse stored user", zap.Error(err))
		return nil, false
	}
	return &u, true
}

func (s *RedisStore) SetUser(ctx context.Context, u *model.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, redisUserKey, raw, 0).Err()
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, redisTokenKey, redisUserKey).Err()
}
