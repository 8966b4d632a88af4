package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/xpanvictor/vidquiz/internal/config"
	"github.com/xpanvictor/vidquiz/pkg/Logger"
)

// AsynqQueue implements Queue on top of asynq and Redis.
type AsynqQueue struct {
	client    *asynq.Client
	server    *asynq.Server
	inspector *asynq.Inspector
	mux       *asynq.ServeMux
	queue     string
	timeout   time.Duration
	retention time.Duration
	logger    *Logger.Logger
}

func NewAsynqQueue(redisCfg config.RedisConfig, cfg config.QueueConfig, logger *Logger.Logger) *AsynqQueue {
	redisOpt := asynq.RedisClientOpt{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Pass,
		DB:       redisCfg.DB,
	}

	queues := cfg.Queues
	if len(queues) == 0 {
		queues = map[string]int{DefaultQueue: 1}
	}
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
		Logger:      NewAsynqLogger(logger),
	})

	return &AsynqQueue{
		client:    asynq.NewClient(redisOpt),
		server:    server,
		inspector: asynq.NewInspector(redisOpt),
		mux:       asynq.NewServeMux(),
		queue:     DefaultQueue,
		timeout:   cfg.JobTimeout,
		retention: cfg.Retention,
		logger:    logger.Named("queue"),
	}
}

// Register binds h to jobs of type t. Call before Start.
func (q *AsynqQueue) Register(t JobType, h Handler) {
	q.mux.HandleFunc(string(t), func(ctx context.Context, task *asynq.Task) error {
		var job Job
		if err := json.Unmarshal(task.Payload(), &job); err != nil {
			return fmt.Errorf("failed to unmarshal %s payload: %w: %w", t, err, asynq.SkipRetry)
		}

		q.logger.Infow("job started", "job", job.ID, "type", job.Type, "video", job.VideoID)
		if err := h(ctx, job); err != nil {
			q.logger.Errorw("job failed", "job", job.ID, "type", job.Type, "error", err)
			return err
		}
		q.logger.Infow("job completed", "job", job.ID, "type", job.Type)
		return nil
	})
}

// Enqueue submits job for immediate processing.
func (q *AsynqQueue) Enqueue(ctx context.Context, job Job) (*JobInfo, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	job.EnqueuedAt = time.Now()

	payload, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job payload: %w", err)
	}

	opts := []asynq.Option{
		asynq.TaskID(job.ID),
		asynq.Queue(q.queue),
		asynq.MaxRetry(0),
	}
	if q.timeout > 0 {
		opts = append(opts, asynq.Timeout(q.timeout))
	}
	if q.retention > 0 {
		opts = append(opts, asynq.Retention(q.retention))
	}

	info, err := q.client.EnqueueContext(ctx, asynq.NewTask(string(job.Type), payload), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue job: %w", err)
	}

	q.logger.Infof("enqueued %s for video %s (queue: %s, id: %s)", job.Type, job.VideoID, info.Queue, info.ID)
	return &JobInfo{ID: info.ID, Type: job.Type, Queue: info.Queue}, nil
}

// Cancel removes a waiting job or signals a running one to stop.
func (q *AsynqQueue) Cancel(ctx context.Context, jobID string) error {
	info, err := q.inspector.GetTaskInfo(q.queue, jobID)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
			return ErrJobNotFound
		}
		return fmt.Errorf("failed to inspect job: %w", err)
	}

	switch info.State {
	case asynq.TaskStateActive:
		if err := q.inspector.CancelProcessing(jobID); err != nil {
			return fmt.Errorf("failed to cancel job: %w", err)
		}
	case asynq.TaskStatePending, asynq.TaskStateScheduled, asynq.TaskStateRetry:
		if err := q.inspector.DeleteTask(q.queue, jobID); err != nil {
			return fmt.Errorf("failed to delete job: %w", err)
		}
	}
	return nil
}

func (q *AsynqQueue) State(ctx context.Context, jobID string) (JobState, error) {
	info, err := q.inspector.GetTaskInfo(q.queue, jobID)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
			return "", ErrJobNotFound
		}
		return "", fmt.Errorf("failed to inspect job: %w", err)
	}
	return fromTaskState(info), nil
}

func fromTaskState(info *asynq.TaskInfo) JobState {
	switch info.State {
	case asynq.TaskStateActive:
		return JobActive
	case asynq.TaskStateCompleted:
		return JobCompleted
	case asynq.TaskStateArchived:
		if info.LastErr == context.Canceled.Error() {
			return JobCanceled
		}
		return JobFailed
	default:
		return JobPending
	}
}

// Start runs the asynq worker server in the background.
func (q *AsynqQueue) Start(ctx context.Context) error {
	q.logger.Info("Starting asynq job server...")
	if err := q.server.Start(q.mux); err != nil {
		return fmt.Errorf("failed to start asynq server: %w", err)
	}
	q.logger.Info("Asynq job server started successfully")
	return nil
}

// Stop waits for active jobs to return and closes connections.
func (q *AsynqQueue) Stop(ctx context.Context) error {
	q.logger.Info("Stopping asynq job server...")

	q.server.Shutdown()
	if err := q.inspector.Close(); err != nil {
		q.logger.Warnf("closing inspector: %v", err)
	}
	if err := q.client.Close(); err != nil {
		return fmt.Errorf("failed to close asynq client: %w", err)
	}

	q.logger.Info("Asynq job server stopped")
	return nil
}
