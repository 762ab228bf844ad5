package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrQueueFull is returned by Enqueue when the buffer has no room.
var ErrQueueFull = errors.New("queue full")

// Job represents a queued background task.
type Job struct {
	ID       string
	Type     string
	Payload  interface{}
	Attempt  int
	Enqueued time.Time
}

// Handler processes a job. A returned error schedules a retry.
type Handler func(context.Context, Job) error

// QueueConfig configures worker pool behaviour.
type QueueConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
	// DrainTimeout bounds how long Stop keeps processing buffered jobs.
	DrainTimeout time.Duration
	Logger       *zap.Logger
}

// Queue is an in-memory job dispatcher backed by goroutines. Enqueue never blocks the
// caller; buffered jobs are drained on Stop.
type Queue struct {
	name    string
	handler Handler
	cfg     QueueConfig
	logger  *zap.Logger

	jobs    chan Job
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	wg      sync.WaitGroup
	retries sync.WaitGroup
	mu      sync.RWMutex
	started bool
	closed  bool
}

// NewQueue builds a new queue with the provided handler.
func NewQueue(name string, handler Handler, cfg QueueConfig) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 64
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = 5 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Queue{
		name:    name,
		handler: handler,
		cfg:     cfg,
		logger:  cfg.Logger.With(zap.String("queue", name)),
		jobs:    make(chan Job, cfg.BufferSize),
		stopped: make(chan struct{}),
	}
}

// Start begins worker consumption. Safe to call once.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	for i := 0; i < q.cfg.Workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	q.started = true
	q.logger.Info("queue started", zap.Int("workers", q.cfg.Workers))
}

// Stop refuses new jobs, processes what is buffered for up to DrainTimeout and waits
// for the workers to exit. Pending retries are abandoned.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.started || q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.stopped)
	q.mu.Unlock()

	q.retries.Wait()
	close(q.jobs)

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(q.cfg.DrainTimeout):
		q.logger.Warn("queue drain timed out", zap.Int("pending", len(q.jobs)))
		q.cancel()
		<-done
	}
	q.cancel()
	q.logger.Info("queue stopped")
}

// Enqueue pushes a job onto the queue without blocking.
func (q *Queue) Enqueue(job Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if !q.started {
		return fmt.Errorf("queue %s not started", q.name)
	}
	if q.closed {
		return fmt.Errorf("queue %s stopped", q.name)
	}
	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now().UTC()
	}

	select {
	case q.jobs <- job:
		return nil
	default:
		return fmt.Errorf("queue %s: %w", q.name, ErrQueueFull)
	}
}

// Pending reports the number of buffered jobs.
func (q *Queue) Pending() int {
	return len(q.jobs)
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for job := range q.jobs {
		if q.ctx.Err() != nil {
			return
		}
		if err := q.handler(q.ctx, job); err != nil {
			q.handleFailure(job, err)
		}
	}
}

func (q *Queue) handleFailure(job Job, err error) {
	job.Attempt++
	fields := []zap.Field{zap.String("job_id", job.ID), zap.String("type", job.Type), zap.Int("attempt", job.Attempt), zap.Error(err)}
	if job.Attempt > q.cfg.MaxRetries {
		q.logger.Error("job exceeded retries", fields...)
		return
	}
	q.logger.Warn("job failed, retrying", fields...)

	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		q.logger.Error("job dropped during shutdown", fields...)
		return
	}
	q.retries.Add(1)
	q.mu.RUnlock()

	go func(j Job) {
		defer q.retries.Done()
		timer := time.NewTimer(q.cfg.RetryDelay)
		defer timer.Stop()
		select {
		case <-q.stopped:
			q.logger.Error("job dropped during shutdown", zap.String("job_id", j.ID), zap.String("type", j.Type))
		case <-timer.C:
			q.requeue(j)
		}
	}(job)
}

// requeue puts a retried job back; it bypasses the closed check since Stop waits for
// pending retries before closing the channel.
func (q *Queue) requeue(job Job) {
	select {
	case q.jobs <- job:
	default:
		q.logger.Error("failed to requeue job", zap.String("job_id", job.ID), zap.Error(ErrQueueFull))
	}
}
