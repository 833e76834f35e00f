package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"signquiz-backend/internal/quiz"
)

var ErrSessionNotFound = errors.New("quiz session not found")

const maxSessionUpdateRetries = 3

// SessionStore keeps in-flight quiz sessions. Update applies fn atomically;
// when fn returns an error nothing is written.
type SessionStore interface {
	Create(ctx context.Context, s *quiz.Session) error
	Get(ctx context.Context, id uuid.UUID) (*quiz.Session, error)
	Update(ctx context.Context, id uuid.UUID, fn func(*quiz.Session) error) (*quiz.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type RedisSessionStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisSessionStore(redisClient *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{redis: redisClient, ttl: ttl}
}

func sessionKey(id uuid.UUID) string {
	return fmt.Sprintf("quiz_session:%s", id)
}

func (st *RedisSessionStore) Create(ctx context.Context, s *quiz.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	ok, err := st.redis.SetNX(ctx, sessionKey(s.ID), data, st.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("session %s already exists", s.ID)
	}
	return nil
}

func (st *RedisSessionStore) Get(ctx context.Context, id uuid.UUID) (*quiz.Session, error) {
	data, err := st.redis.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeSession(data)
}

// Update watches the session key so a concurrent Delete or Update aborts the
// write instead of resurrecting or clobbering the session.
func (st *RedisSessionStore) Update(ctx context.Context, id uuid.UUID, fn func(*quiz.Session) error) (*quiz.Session, error) {
	key := sessionKey(id)

	var updated *quiz.Session
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}

		s, err := decodeSession(data)
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}

		out, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to encode session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, st.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		updated = s
		return nil
	}

	for i := 0; i < maxSessionUpdateRetries; i++ {
		err := st.redis.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, &ConflictError{Message: "Quiz session was modified concurrently, please retry"}
}

func (st *RedisSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := st.redis.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func decodeSession(data []byte) (*quiz.Session, error) {
	var s quiz.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}
