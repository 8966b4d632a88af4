package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/xpanvictor/vidquiz/pkg/Logger"
)

func waitDone(t *testing.T, q *LocalQueue, id string) {
	t.Helper()
	select {
	case <-q.Done(id):
	case <-time.After(2 * time.Second):
		t.Fatalf("job %s did not finish", id)
	}
}

func TestLocalQueueRunsJob(t *testing.T) {
	q := NewLocalQueue(1, 0, Logger.NewNop())
	var got Job
	q.Register(JobTypeProcessVideo, func(ctx context.Context, job Job) error {
		got = job
		return nil
	})

	info, err := q.Enqueue(context.Background(), Job{Type: JobTypeProcessVideo, VideoID: "v1"})
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	waitDone(t, q, info.ID)

	if got.VideoID != "v1" || got.ID != info.ID {
		t.Errorf("Handler saw %+v", got)
	}
	if s, _ := q.State(context.Background(), info.ID); s != JobCompleted {
		t.Errorf("Expected completed, got %s", s)
	}
}

func TestLocalQueueFailureAndPanic(t *testing.T) {
	q := NewLocalQueue(2, 0, Logger.NewNop())
	q.Register(JobTypeProcessVideo, func(ctx context.Context, job Job) error {
		return errors.New("boom")
	})
	q.Register(JobTypeGenerateQuestions, func(ctx context.Context, job Job) error {
		panic("kaboom")
	})

	a, _ := q.Enqueue(context.Background(), Job{Type: JobTypeProcessVideo})
	b, _ := q.Enqueue(context.Background(), Job{Type: JobTypeGenerateQuestions})
	waitDone(t, q, a.ID)
	waitDone(t, q, b.ID)

	for _, id := range []string{a.ID, b.ID} {
		if s, _ := q.State(context.Background(), id); s != JobFailed {
			t.Errorf("Job %s: expected failed, got %s", id, s)
		}
	}
}

func TestLocalQueueCancelRunning(t *testing.T) {
	q := NewLocalQueue(1, 0, Logger.NewNop())
	started := make(chan struct{})
	q.Register(JobTypeProcessVideo, func(ctx context.Context, job Job) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})

	info, _ := q.Enqueue(context.Background(), Job{Type: JobTypeProcessVideo})
	<-started
	if s, _ := q.State(context.Background(), info.ID); s != JobActive {
		t.Errorf("Expected active, got %s", s)
	}
	if err := q.Cancel(context.Background(), info.ID); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	waitDone(t, q, info.ID)
	if s, _ := q.State(context.Background(), info.ID); s != JobCanceled {
		t.Errorf("Expected canceled, got %s", s)
	}
}

func TestLocalQueueCancelPending(t *testing.T) {
	q := NewLocalQueue(1, 0, Logger.NewNop())
	release := make(chan struct{})
	var runs int32
	q.Register(JobTypeProcessVideo, func(ctx context.Context, job Job) error {
		atomic.AddInt32(&runs, 1)
		<-release
		return nil
	})

	first, _ := q.Enqueue(context.Background(), Job{Type: JobTypeProcessVideo})
	for atomic.LoadInt32(&runs) == 0 {
		time.Sleep(time.Millisecond)
	}
	second, _ := q.Enqueue(context.Background(), Job{Type: JobTypeProcessVideo})
	if err := q.Cancel(context.Background(), second.ID); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	waitDone(t, q, second.ID)
	close(release)
	waitDone(t, q, first.ID)

	if n := atomic.LoadInt32(&runs); n != 1 {
		t.Errorf("Expected one handler run, got %d", n)
	}
	if s, _ := q.State(context.Background(), second.ID); s != JobCanceled {
		t.Errorf("Expected canceled, got %s", s)
	}
}

func TestLocalQueueTimeout(t *testing.T) {
	q := NewLocalQueue(1, 20*time.Millisecond, Logger.NewNop())
	q.Register(JobTypeProcessVideo, func(ctx context.Context, job Job) error {
		<-ctx.Done()
		return ctx.Err()
	})
	info, _ := q.Enqueue(context.Background(), Job{Type: JobTypeProcessVideo})
	waitDone(t, q, info.ID)
	if s, _ := q.State(context.Background(), info.ID); s != JobFailed {
		t.Errorf("Expected failed after deadline, got %s", s)
	}
}

func TestLocalQueueErrors(t *testing.T) {
	q := NewLocalQueue(1, 0, Logger.NewNop())
	if _, err := q.Enqueue(context.Background(), Job{Type: "unknown"}); err == nil {
		t.Error("Expected error for unregistered type")
	}
	if err := q.Cancel(context.Background(), "missing"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("Expected ErrJobNotFound, got %v", err)
	}
	if _, err := q.State(context.Background(), "missing"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("Expected ErrJobNotFound, got %v", err)
	}
	if q.Done("missing") != nil {
		t.Error("Expected nil channel for unknown job")
	}

	q.Register(JobTypeProcessVideo, func(ctx context.Context, job Job) error { return nil })
	if err := q.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if _, err := q.Enqueue(context.Background(), Job{Type: JobTypeProcessVideo}); err == nil {
		t.Error("Expected error after stop")
	}
}

func TestLocalQueuePrunesFinishedJobs(t *testing.T) {
	q := NewLocalQueue(1, 0, Logger.NewNop())
	q.Retention = 10 * time.Millisecond
	q.Register(JobTypeProcessVideo, func(ctx context.Context, job Job) error { return nil })

	old, _ := q.Enqueue(context.Background(), Job{Type: JobTypeProcessVideo})
	waitDone(t, q, old.ID)
	time.Sleep(30 * time.Millisecond)

	fresh, _ := q.Enqueue(context.Background(), Job{Type: JobTypeProcessVideo})
	waitDone(t, q, fresh.ID)

	if _, err := q.State(context.Background(), old.ID); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("Expected expired job to be pruned, got %v", err)
	}
	if s, err := q.State(context.Background(), fresh.ID); err != nil || s != JobCompleted {
		t.Errorf("Expected fresh job completed, got %s (%v)", s, err)
	}
}

func TestJobStateTerminal(t *testing.T) {
	for s, want := range map[JobState]bool{
		JobPending: false, JobActive: false, JobCompleted: true, JobFailed: true, JobCanceled: true,
	} {
		if s.Terminal() != want {
			t.Errorf("%s.Terminal() = %v", s, !want)
		}
	}
}
