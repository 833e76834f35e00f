package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"signquiz-backend/internal/fallback"
	"signquiz-backend/internal/models"
	"signquiz-backend/internal/quiz"
)

const ProgressQueueKey = "queue:progress-events"

// JobQueue hands progress jobs to the recorder workers.
type JobQueue interface {
	Push(ctx context.Context, job models.ProgressJob) error
}

type RedisJobQueue struct {
	redis *redis.Client
}

func NewRedisJobQueue(redisClient *redis.Client) *RedisJobQueue {
	return &RedisJobQueue{redis: redisClient}
}

func (q *RedisJobQueue) Push(ctx context.Context, job models.ProgressJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode progress job: %w", err)
	}
	return q.redis.LPush(ctx, ProgressQueueKey, data).Err()
}

// ProgressStore reads a user's answer log and appends new entries through the
// job queue.
type ProgressStore struct {
	repo    ProgressReader
	queue   JobQueue
	content *fallback.Content
	now     func() time.Time
}

func NewProgressStore(repo ProgressReader, queue JobQueue, content *fallback.Content) *ProgressStore {
	return &ProgressStore{repo: repo, queue: queue, content: content, now: time.Now}
}

// ListEvents never fails. The boolean reports whether the sample log was
// served instead of the user's own.
func (p *ProgressStore) ListEvents(ctx context.Context, userID string) ([]models.AnswerEvent, bool) {
	if p.repo == nil {
		return p.content.Progress(userID, p.now().UTC()), true
	}

	events, err := p.repo.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("Error fetching progress for user %q, serving fallback: %v", userID, err)
		return p.content.Progress(userID, p.now().UTC()), true
	}
	return events, false
}

// Append queues the events of a finished session for recording.
func (p *ProgressStore) Append(ctx context.Context, s *quiz.Session, events []models.AnswerEvent) (uuid.UUID, error) {
	if p.queue == nil {
		return uuid.Nil, fmt.Errorf("progress queue is not configured")
	}

	job := models.ProgressJob{
		ID:         uuid.New(),
		UserID:     s.UserID,
		SessionID:  s.ID,
		CategoryID: s.CategoryID,
		Events:     events,
		CreatedAt:  p.now().UTC(),
	}
	if err := p.queue.Push(ctx, job); err != nil {
		return uuid.Nil, fmt.Errorf("failed to queue progress job: %w", err)
	}
	return job.ID, nil
}
