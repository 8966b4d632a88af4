package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/xpanvictor/vidquiz/internal/domains/questions"
	"github.com/xpanvictor/vidquiz/internal/domains/scheduler"
	"github.com/xpanvictor/vidquiz/internal/domains/transcript"
	"github.com/xpanvictor/vidquiz/internal/domains/video"
	"github.com/xpanvictor/vidquiz/internal/types"
	"github.com/xpanvictor/vidquiz/pkg/Logger"
	"github.com/xpanvictor/vidquiz/pkg/io/stt"
)

// ErrSuperseded stops a job whose video has since been given a new job,
// or deleted.
var ErrSuperseded = errors.New("job superseded")

// Processor runs the transcription and question phases for a video.
type Processor struct {
	repository  video.VideoRepository
	transcriber stt.Transcriber
	generator   *questions.Generator
	logger      *Logger.Logger
}

func NewProcessor(repo video.VideoRepository, transcriber stt.Transcriber, generator *questions.Generator, logger *Logger.Logger) *Processor {
	return &Processor{
		repository:  repo,
		transcriber: transcriber,
		generator:   generator,
		logger:      logger.Named("pipeline"),
	}
}

// Register binds the processor's handlers to q.
func (p *Processor) Register(q scheduler.Queue) {
	q.Register(scheduler.JobTypeProcessVideo, p.handle(p.ProcessVideo))
	q.Register(scheduler.JobTypeGenerateQuestions, p.handle(p.GenerateQuestions))
}

func (p *Processor) handle(run func(ctx context.Context, videoID, jobID string) error) scheduler.Handler {
	return func(ctx context.Context, job scheduler.Job) error {
		err := run(ctx, job.VideoID, job.ID)
		if errors.Is(err, ErrSuperseded) {
			p.logger.Infof("job %s for video %s superseded", job.ID, job.VideoID)
			return nil
		}
		return err
	}
}

// update reloads the video, applies fn and saves it, as long as jobID
// still owns the record.
func (p *Processor) update(ctx context.Context, videoID, jobID string, fn func(v *video.Video) error) (*video.Video, error) {
	// status writes go through even when the job itself was cancelled
	ctx = context.WithoutCancel(ctx)

	v, err := p.repository.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, ErrSuperseded
		}
		return nil, fmt.Errorf("load video %s: %w", videoID, err)
	}
	if jobID != "" && v.JobID != jobID {
		return nil, ErrSuperseded
	}

	if err := fn(v); err != nil {
		return nil, err
	}
	if err := p.repository.Save(ctx, v); err != nil {
		return nil, fmt.Errorf("save video %s: %w", videoID, err)
	}
	return v, nil
}

// fail records err on the video. The job itself succeeds: a failed phase
// is a result, not a job error.
func (p *Processor) fail(ctx context.Context, videoID, jobID, phase string, cause error) error {
	p.logger.Errorw("phase failed", "video", videoID, "phase", phase, "error", cause)
	reason := fmt.Sprintf("%s failed: %v", phase, cause)
	if errors.Is(cause, context.Canceled) {
		reason = "processing canceled"
	}

	_, err := p.update(ctx, videoID, jobID, func(v *video.Video) error {
		v.Fail(ctx, reason)
		return nil
	})
	return err
}

// ProcessVideo transcribes the video then generates its questions. Every
// status change is persisted before the next step begins.
func (p *Processor) ProcessVideo(ctx context.Context, videoID, jobID string) error {
	v, err := p.update(ctx, videoID, jobID, func(v *video.Video) error {
		return v.StartTranscription(ctx)
	})
	if err != nil {
		return err
	}

	segments, err := p.transcribe(ctx, v)
	if err != nil {
		return p.fail(ctx, videoID, jobID, "transcription", err)
	}

	if _, err := p.update(ctx, videoID, jobID, func(v *video.Video) error {
		return v.CompleteTranscription(ctx, segments)
	}); err != nil {
		return err
	}
	p.logger.Infof("video %s transcribed into %d segments", videoID, len(segments))

	return p.GenerateQuestions(ctx, videoID, jobID)
}

func (p *Processor) transcribe(ctx context.Context, v *video.Video) ([]types.Segment, error) {
	raw, err := p.transcriber.Transcribe(ctx, v.FilePath)
	if err != nil {
		return nil, types.ExternalTool(p.transcriber.Name(), err)
	}

	fragments, err := transcript.ParseRaw(raw)
	if err != nil {
		return nil, err
	}
	return transcript.Merge(fragments), nil
}

// GenerateQuestions runs only the question phase over stored segments.
func (p *Processor) GenerateQuestions(ctx context.Context, videoID, jobID string) error {
	v, err := p.update(ctx, videoID, jobID, func(v *video.Video) error {
		if v.TranscriptionStatus != video.StatusCompleted {
			return fmt.Errorf("%w: transcription is %s", types.ErrValidation, v.TranscriptionStatus)
		}
		return v.StartQuestions(ctx)
	})
	if err != nil {
		if errors.Is(err, types.ErrValidation) {
			return p.fail(ctx, videoID, jobID, "question generation", err)
		}
		return err
	}

	qs, err := p.generator.GenerateAll(ctx, v.Segments)
	if err != nil {
		return p.fail(ctx, videoID, jobID, "question generation", err)
	}

	if _, err := p.update(ctx, videoID, jobID, func(v *video.Video) error {
		return v.CompleteQuestions(ctx, qs)
	}); err != nil {
		return err
	}

	p.logger.Infof("video %s: %d questions generated", videoID, len(qs))
	return nil
}
