package scheduler

import (
	"context"
	"errors"
	"time"
)

// JobType names a kind of background job.
type JobType string

const (
	// JobTypeProcessVideo runs transcription followed by question generation.
	JobTypeProcessVideo JobType = "video:process"
	// JobTypeGenerateQuestions reruns only the question phase.
	JobTypeGenerateQuestions JobType = "video:questions"
)

const DefaultQueue = "default"

var ErrJobNotFound = errors.New("job not found")

// Job is the payload carried by every queued job.
type Job struct {
	ID         string    `json:"id"`
	Type       JobType   `json:"type"`
	VideoID    string    `json:"video_id"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// JobInfo describes an accepted job.
type JobInfo struct {
	ID    string  `json:"id"`
	Type  JobType `json:"type"`
	Queue string  `json:"queue"`
}

// JobState is the observable lifecycle state of a job.
type JobState string

const (
	JobPending   JobState = "pending"
	JobActive    JobState = "active"
	JobCompleted JobState = "completed"
	JobFailed    JobState = "failed"
	JobCanceled  JobState = "canceled"
)

// Terminal reports whether no further work will happen for the job.
func (s JobState) Terminal() bool {
	return s == JobCompleted || s == JobFailed || s == JobCanceled
}

// Handler runs one job. ctx is cancelled when the job is cancelled, times
// out or the queue shuts down.
type Handler func(ctx context.Context, job Job) error

// Queue accepts background jobs and runs them on registered handlers.
// Jobs are not retried automatically.
type Queue interface {
	Register(t JobType, h Handler)
	Enqueue(ctx context.Context, job Job) (*JobInfo, error)
	Cancel(ctx context.Context, jobID string) error
	State(ctx context.Context, jobID string) (JobState, error)

	// Lifecycle methods
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
