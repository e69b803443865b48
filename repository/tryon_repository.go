package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"vastra-api/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrTryOnNotFound is returned when a session id is unknown or has expired.
var ErrTryOnNotFound = errors.New("try-on session not found")

const tryOnQueueKey = "tryon:queue"

// TryOnRepository stores simulated try-on sessions and the processing queue.
type TryOnRepository interface {
	Save(ctx context.Context, session *models.TryOnSession) error
	Find(ctx context.Context, id uuid.UUID) (*models.TryOnSession, error)
	Enqueue(ctx context.Context, id uuid.UUID) error
	Dequeue(ctx context.Context) (uuid.UUID, error)
}

// RedisTryOnRepository implements TryOnRepository on Redis. Sessions share
// the session-cookie TTL so abandoned jobs age out on their own.
type RedisTryOnRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTryOnRepository(client *redis.Client, ttl time.Duration) *RedisTryOnRepository {
	return &RedisTryOnRepository{client: client, ttl: ttl}
}

func (r *RedisTryOnRepository) getKey(id uuid.UUID) string {
	return "tryon:session:" + id.String()
}

func (r *RedisTryOnRepository) Save(ctx context.Context, session *models.TryOnSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.getKey(session.ID), data, r.ttl).Err()
}

func (r *RedisTryOnRepository) Find(ctx context.Context, id uuid.UUID) (*models.TryOnSession, error) {
	data, err := r.client.Get(ctx, r.getKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrTryOnNotFound
	}
	if err != nil {
		return nil, err
	}

	var session models.TryOnSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *RedisTryOnRepository) Enqueue(ctx context.Context, id uuid.UUID) error {
	return r.client.RPush(ctx, tryOnQueueKey, id.String()).Err()
}

// Dequeue blocks until a session id is available or the context is canceled.
func (r *RedisTryOnRepository) Dequeue(ctx context.Context) (uuid.UUID, error) {
	res, err := r.client.BLPop(ctx, 0*time.Second, tryOnQueueKey).Result()
	if err != nil {
		return uuid.Nil, err
	}
	if len(res) < 2 {
		return uuid.Nil, errors.New("malformed queue entry")
	}
	return uuid.Parse(res[1])
}
