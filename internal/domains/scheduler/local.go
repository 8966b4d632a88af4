package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xpanvictor/vidquiz/pkg/Logger"
)

type localJob struct {
	job    Job
	state  JobState
	cancel context.CancelFunc
	done   chan struct{}
	ended  time.Time
}

// defaultLocalRetention is how long finished jobs stay queryable.
const defaultLocalRetention = time.Hour

// LocalQueue runs jobs on goroutines inside the API process. It keeps no
// state across restarts and is meant for single node setups and tests.
type LocalQueue struct {
	// Retention bounds how long a finished job stays visible to State.
	Retention time.Duration

	mu       sync.Mutex
	handlers map[JobType]Handler
	jobs     map[string]*localJob
	slots    chan struct{}
	timeout  time.Duration
	wg       sync.WaitGroup
	root     context.Context
	stop     context.CancelFunc
	stopped  bool
	logger   *Logger.Logger
}

func NewLocalQueue(concurrency int, timeout time.Duration, logger *Logger.Logger) *LocalQueue {
	if concurrency < 1 {
		concurrency = 1
	}
	root, stop := context.WithCancel(context.Background())
	return &LocalQueue{
		Retention: defaultLocalRetention,
		handlers: make(map[JobType]Handler),
		jobs:     make(map[string]*localJob),
		slots:    make(chan struct{}, concurrency),
		timeout:  timeout,
		root:     root,
		stop:     stop,
		logger:   logger.Named("queue"),
	}
}

func (q *LocalQueue) Register(t JobType, h Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[t] = h
}

func (q *LocalQueue) Enqueue(ctx context.Context, job Job) (*JobInfo, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.stopped {
		return nil, errors.New("queue is stopped")
	}
	h, ok := q.handlers[job.Type]
	if !ok {
		return nil, fmt.Errorf("no handler registered for %s", job.Type)
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if _, exists := q.jobs[job.ID]; exists {
		return nil, fmt.Errorf("job %s already exists", job.ID)
	}
	job.EnqueuedAt = time.Now()
	q.prune(job.EnqueuedAt)

	jobCtx, cancel := context.WithCancel(q.root)
	lj := &localJob{job: job, state: JobPending, cancel: cancel, done: make(chan struct{})}
	q.jobs[job.ID] = lj

	q.wg.Add(1)
	go q.run(jobCtx, lj, h)

	q.logger.Infof("enqueued %s for video %s (id: %s)", job.Type, job.VideoID, job.ID)
	return &JobInfo{ID: job.ID, Type: job.Type, Queue: DefaultQueue}, nil
}

func (q *LocalQueue) run(ctx context.Context, lj *localJob, h Handler) {
	defer q.wg.Done()
	defer close(lj.done)
	defer lj.cancel()

	select {
	case q.slots <- struct{}{}:
		defer func() { <-q.slots }()
	case <-ctx.Done():
		q.setState(lj, JobCanceled)
		return
	}

	if ctx.Err() != nil {
		q.setState(lj, JobCanceled)
		return
	}
	q.setState(lj, JobActive)

	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}

	err := q.invoke(ctx, lj.job, h)
	switch {
	case err == nil:
		q.logger.Infow("job completed", "job", lj.job.ID, "type", lj.job.Type)
		q.setState(lj, JobCompleted)
	case errors.Is(err, context.Canceled):
		q.logger.Warnw("job canceled", "job", lj.job.ID, "type", lj.job.Type)
		q.setState(lj, JobCanceled)
	default:
		q.logger.Errorw("job failed", "job", lj.job.ID, "type", lj.job.Type, "error", err)
		q.setState(lj, JobFailed)
	}
}

// invoke converts a handler panic into a job failure.
func (q *LocalQueue) invoke(ctx context.Context, job Job, h Handler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return h(ctx, job)
}

func (q *LocalQueue) setState(lj *localJob, s JobState) {
	q.mu.Lock()
	defer q.mu.Unlock()
	lj.state = s
	if s.Terminal() {
		lj.ended = time.Now()
	}
}

// prune forgets jobs that finished more than Retention ago. Callers hold mu.
func (q *LocalQueue) prune(now time.Time) {
	if q.Retention <= 0 {
		return
	}
	for id, lj := range q.jobs {
		if lj.state.Terminal() && now.Sub(lj.ended) > q.Retention {
			delete(q.jobs, id)
		}
	}
}

func (q *LocalQueue) Cancel(ctx context.Context, jobID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	lj, ok := q.jobs[jobID]
	if !ok {
		return ErrJobNotFound
	}
	if !lj.state.Terminal() {
		lj.cancel()
	}
	return nil
}

func (q *LocalQueue) State(ctx context.Context, jobID string) (JobState, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	lj, ok := q.jobs[jobID]
	if !ok {
		return "", ErrJobNotFound
	}
	return lj.state, nil
}

// Done returns a channel closed once the job has finished, or nil for an
// unknown job.
func (q *LocalQueue) Done(jobID string) <-chan struct{} {
	q.mu.Lock()
	defer q.mu.Unlock()

	lj, ok := q.jobs[jobID]
	if !ok {
		return nil
	}
	return lj.done
}

func (q *LocalQueue) Start(ctx context.Context) error {
	q.logger.Infof("local job queue started (concurrency %d)", cap(q.slots))
	return nil
}

// Stop cancels every job and waits for handlers to return, or for ctx.
func (q *LocalQueue) Stop(ctx context.Context) error {
	q.mu.Lock()
	q.stopped = true
	q.mu.Unlock()

	q.stop()

	finished := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		q.logger.Info("local job queue stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for jobs: %w", ctx.Err())
	}
}
