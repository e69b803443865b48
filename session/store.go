package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a session id is unknown or has expired.
var ErrNotFound = errors.New("session not found or expired")

// CookieName is the cookie that carries the opaque session id.
const CookieName = "session_id"

// TTL is the fixed session lifetime. Sessions are not refreshed on use.
const TTL = 30 * time.Minute

// Store maps opaque session ids to user ids.
type Store interface {
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	Get(ctx context.Context, sessionID string) (uuid.UUID, error)
	Destroy(ctx context.Context, sessionID string) error
}

// RedisStore implements Store on Redis with the fixed TTL.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) getKey(sessionID string) string {
	return "session:" + sessionID
}

func (s *RedisStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	sessionID := uuid.NewString()
	if err := s.client.Set(ctx, s.getKey(sessionID), userID.String(), TTL).Err(); err != nil {
		return "", err
	}
	return sessionID, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (uuid.UUID, error) {
	val, err := s.client.Get(ctx, s.getKey(sessionID)).Result()
	if err == redis.Nil {
		return uuid.Nil, ErrNotFound
	}
	if err != nil {
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, ErrNotFound
	}
	return userID, nil
}

func (s *RedisStore) Destroy(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.getKey(sessionID)).Err()
}
