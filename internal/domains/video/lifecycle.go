package video

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/xpanvictor/vidquiz/internal/types"
)

// PhaseStatus is the state of the overall job or one of its phases.
type PhaseStatus string

const (
	StatusPending    PhaseStatus = "pending"
	StatusProcessing PhaseStatus = "processing"
	StatusCompleted  PhaseStatus = "completed"
	StatusFailed     PhaseStatus = "failed"
)

// Phase events
const (
	EventStart    = "start"
	EventComplete = "complete"
	EventFail     = "fail"
	EventReset    = "reset"
)

func (s PhaseStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

var phaseEvents = fsm.Events{
	{Name: EventStart, Src: []string{string(StatusPending)}, Dst: string(StatusProcessing)},
	{Name: EventComplete, Src: []string{string(StatusProcessing)}, Dst: string(StatusCompleted)},
	{Name: EventFail, Src: []string{string(StatusPending), string(StatusProcessing)}, Dst: string(StatusFailed)},
	{Name: EventReset, Src: []string{
		string(StatusPending), string(StatusProcessing), string(StatusCompleted), string(StatusFailed),
	}, Dst: string(StatusPending)},
}

// ErrInvalidTransition is returned for an event not allowed from the
// current status.
var ErrInvalidTransition = errors.New("invalid status transition")

// Transition applies event to current and returns the resulting status.
// Firing an event that leaves the status unchanged is not an error.
func Transition(ctx context.Context, current PhaseStatus, event string) (PhaseStatus, error) {
	if current == "" {
		current = StatusPending
	}
	machine := fsm.NewFSM(string(current), phaseEvents, fsm.Callbacks{})

	// a cancelled job still records its final status
	if err := machine.Event(context.WithoutCancel(ctx), event); err != nil {
		var noTransition fsm.NoTransitionError
		if errors.As(err, &noTransition) {
			return current, nil
		}
		return current, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, event, current)
	}
	return PhaseStatus(machine.Current()), nil
}

// advance applies event to *status in place.
func advance(ctx context.Context, status *PhaseStatus, event string) error {
	next, err := Transition(ctx, *status, event)
	if err != nil {
		return err
	}
	*status = next
	return nil
}

// StartTranscription moves the video and its transcription phase to processing.
func (v *Video) StartTranscription(ctx context.Context) error {
	if err := advance(ctx, &v.Status, EventStart); err != nil {
		return err
	}
	return advance(ctx, &v.TranscriptionStatus, EventStart)
}

// CompleteTranscription stores segments and marks the phase completed.
func (v *Video) CompleteTranscription(ctx context.Context, segments []types.Segment) error {
	v.Segments = segments
	return advance(ctx, &v.TranscriptionStatus, EventComplete)
}

// StartQuestions moves the question phase to processing; the overall status
// is started as well when only the question phase runs.
func (v *Video) StartQuestions(ctx context.Context) error {
	if v.Status == StatusPending {
		if err := advance(ctx, &v.Status, EventStart); err != nil {
			return err
		}
	}
	return advance(ctx, &v.QuestionStatus, EventStart)
}

// CompleteQuestions stores questions and completes the phase and the video.
func (v *Video) CompleteQuestions(ctx context.Context, qs []types.Question) error {
	v.Questions = qs
	if err := advance(ctx, &v.QuestionStatus, EventComplete); err != nil {
		return err
	}
	return advance(ctx, &v.Status, EventComplete)
}

// Fail marks the running phase and the video failed with reason. Phases
// that never started stay pending.
func (v *Video) Fail(ctx context.Context, reason string) {
	v.ErrorMessage = reason
	for _, s := range []*PhaseStatus{&v.TranscriptionStatus, &v.QuestionStatus} {
		if *s == StatusProcessing {
			_ = advance(ctx, s, EventFail)
		}
	}
	if !v.Status.Terminal() {
		_ = advance(ctx, &v.Status, EventFail)
	}
}

// Reset returns the video to a freshly uploaded state.
func (v *Video) Reset(ctx context.Context) {
	for _, s := range []*PhaseStatus{&v.Status, &v.TranscriptionStatus, &v.QuestionStatus} {
		_ = advance(ctx, s, EventReset)
	}
	v.ErrorMessage = ""
	v.Segments = []types.Segment{}
	v.Questions = []types.Question{}
}

// ResetQuestions prepares a question-only rerun on a transcribed video.
func (v *Video) ResetQuestions(ctx context.Context) {
	_ = advance(ctx, &v.Status, EventReset)
	_ = advance(ctx, &v.QuestionStatus, EventReset)
	v.ErrorMessage = ""
}
