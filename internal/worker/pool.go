package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"signquiz-backend/internal/models"
	"signquiz-backend/internal/services"
)

const (
	maxAttempts  = 3
	popTimeout   = 5 * time.Second
	lockDuration = 10 * time.Minute
)

var errProgressLogUnavailable = errors.New("progress log is unavailable")

// EventWriter persists answer events. InsertBatch must skip events already
// stored so retried jobs stay idempotent.
type EventWriter interface {
	InsertBatch(ctx context.Context, events []models.AnswerEvent) (int, error)
}

type Publisher interface {
	PublishUpdate(ctx context.Context, userID string, msg models.WSMessage) error
}

// Pool drains the progress queue into the progress log and tells the user's
// open WebSocket connections about the outcome.
type Pool struct {
	redis       *redis.Client
	events      EventWriter
	notifier    Publisher
	workerCount int
	stopChan    chan struct{}
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	stopOnce    sync.Once
	requeue     func(job models.ProgressJob, delay time.Duration)
	now         func() time.Time
}

func NewPool(redisClient *redis.Client, events EventWriter, notifier Publisher, workerCount int) *Pool {
	p := &Pool{
		redis:       redisClient,
		events:      events,
		notifier:    notifier,
		workerCount: workerCount,
		stopChan:    make(chan struct{}),
		now:         time.Now,
	}
	p.requeue = p.requeueAfter
	return p
}

func (p *Pool) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}

	log.Printf("Started %d progress worker goroutines", p.workerCount)
}

// Stop signals the workers and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopChan)
		if p.cancel != nil {
			p.cancel()
		}
	})
	p.wg.Wait()
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			log.Printf("Worker %d shutting down", id)
			return
		default:
		}

		result, err := p.redis.BLPop(ctx, popTimeout, services.ProgressQueueKey).Result()
		if err != nil {
			continue // Timeout, shutdown or transient error
		}
		if len(result) < 2 {
			continue
		}

		var job models.ProgressJob
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			log.Printf("Worker %d: failed to parse progress job: %v", id, err)
			continue
		}

		lockKey := fmt.Sprintf("progress_job_lock:%s", job.ID)
		locked, err := p.redis.SetNX(ctx, lockKey, "1", lockDuration).Result()
		if err != nil || !locked {
			continue // Another worker has this job
		}

		log.Printf("Worker %d: recording job %s (%d events for user %s)", id, job.ID, len(job.Events), job.UserID)

		// Jobs run to completion even when shutdown starts mid-way.
		jobCtx := context.WithoutCancel(ctx)
		p.handle(jobCtx, &job)

		p.redis.Del(jobCtx, lockKey)
	}
}

func (p *Pool) handle(ctx context.Context, job *models.ProgressJob) {
	recorded, err := p.process(ctx, job)
	if err != nil {
		p.handleFailure(ctx, job, err)
		return
	}
	p.handleSuccess(ctx, job, recorded)
}

func (p *Pool) process(ctx context.Context, job *models.ProgressJob) (int, error) {
	if p.events == nil {
		return 0, errProgressLogUnavailable
	}
	for _, e := range job.Events {
		if e.UserID != job.UserID {
			return 0, fmt.Errorf("event %s belongs to user %s, not %s", e.ID, e.UserID, job.UserID)
		}
	}
	return p.events.InsertBatch(ctx, job.Events)
}

func (p *Pool) handleSuccess(ctx context.Context, job *models.ProgressJob, recorded int) {
	correct := 0
	for _, e := range job.Events {
		if e.IsCorrect {
			correct++
		}
	}

	p.publish(ctx, job.UserID, models.WSMessage{
		Type: "progress_recorded",
		Payload: models.ProgressRecorded{
			JobID:      job.ID,
			SessionID:  job.SessionID,
			CategoryID: job.CategoryID,
			Recorded:   recorded,
			Correct:    correct,
			RecordedAt: p.now().UTC(),
		},
	})

	log.Printf("Progress job %s recorded %d of %d events", job.ID, recorded, len(job.Events))
}

func (p *Pool) handleFailure(ctx context.Context, job *models.ProgressJob, err error) {
	job.RetryCount++
	errMsg := err.Error()

	if job.RetryCount < maxAttempts {
		log.Printf("Progress job %s failed (attempt %d): %s, retrying", job.ID, job.RetryCount, errMsg)
		p.requeue(*job, backoff(job.RetryCount))
		return
	}

	log.Printf("Progress job %s failed permanently: %s", job.ID, errMsg)
	p.publish(ctx, job.UserID, models.WSMessage{
		Type: "error",
		Payload: models.ErrorEvent{
			JobID:        job.ID,
			ErrorCode:    "PROGRESS_NOT_RECORDED",
			ErrorMessage: errMsg,
		},
	})
}

func (p *Pool) requeueAfter(job models.ProgressJob, delay time.Duration) {
	data, err := json.Marshal(job)
	if err != nil {
		log.Printf("Failed to encode progress job %s for retry: %v", job.ID, err)
		return
	}
	time.AfterFunc(delay, func() {
		if err := p.redis.LPush(context.Background(), services.ProgressQueueKey, data).Err(); err != nil {
			log.Printf("Failed to requeue progress job %s: %v", job.ID, err)
		}
	})
}

func (p *Pool) publish(ctx context.Context, userID string, msg models.WSMessage) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.PublishUpdate(ctx, userID, msg); err != nil {
		log.Printf("Failed to publish %s update for user %s: %v", msg.Type, userID, err)
	}
}

func backoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * time.Second
}
