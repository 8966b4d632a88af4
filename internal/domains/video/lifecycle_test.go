package video

import (
	"context"
	"errors"
	"testing"

	"github.com/xpanvictor/vidquiz/internal/types"
)

func TestTransition(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		from  PhaseStatus
		event string
		want  PhaseStatus
		err   bool
	}{
		{StatusPending, EventStart, StatusProcessing, false},
		{StatusProcessing, EventComplete, StatusCompleted, false},
		{StatusProcessing, EventFail, StatusFailed, false},
		{StatusPending, EventFail, StatusFailed, false},
		{StatusCompleted, EventReset, StatusPending, false},
		{StatusFailed, EventReset, StatusPending, false},
		{StatusPending, EventReset, StatusPending, false},
		{"", EventStart, StatusProcessing, false},
		{StatusPending, EventComplete, StatusPending, true},
		{StatusCompleted, EventStart, StatusCompleted, true},
		{StatusFailed, EventComplete, StatusFailed, true},
	}
	for _, tc := range cases {
		got, err := Transition(ctx, tc.from, tc.event)
		if (err != nil) != tc.err {
			t.Errorf("%s from %q: unexpected error %v", tc.event, tc.from, err)
		}
		if tc.err && !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s from %q: expected ErrInvalidTransition, got %v", tc.event, tc.from, err)
		}
		if got != tc.want {
			t.Errorf("%s from %q = %q, want %q", tc.event, tc.from, got, tc.want)
		}
	}
}

func TestVideoHappyPath(t *testing.T) {
	ctx := context.Background()
	v := NewVideo("", "talk.mp3", 5)

	if err := v.StartTranscription(ctx); err != nil {
		t.Fatalf("StartTranscription: %v", err)
	}
	if v.Status != StatusProcessing || v.TranscriptionStatus != StatusProcessing {
		t.Fatalf("Unexpected statuses %s/%s", v.Status, v.TranscriptionStatus)
	}
	if err := v.CompleteTranscription(ctx, []types.Segment{{Text: "x"}}); err != nil {
		t.Fatalf("CompleteTranscription: %v", err)
	}
	if err := v.StartQuestions(ctx); err != nil {
		t.Fatalf("StartQuestions: %v", err)
	}
	if err := v.CompleteQuestions(ctx, []types.Question{{Question: "q"}}); err != nil {
		t.Fatalf("CompleteQuestions: %v", err)
	}
	if v.Status != StatusCompleted || v.TranscriptionStatus != StatusCompleted || v.QuestionStatus != StatusCompleted {
		t.Errorf("Expected all completed, got %s/%s/%s", v.Status, v.TranscriptionStatus, v.QuestionStatus)
	}
	if v.Title != "talk" || v.MimeType != "audio/mpeg" {
		t.Errorf("Unexpected title or mime %q %q", v.Title, v.MimeType)
	}
}

func TestVideoFailLeavesUnstartedPhasesPending(t *testing.T) {
	ctx := context.Background()
	v := NewVideo("t", "a.mp4", 1)
	v.StartTranscription(ctx)
	v.Fail(ctx, "whisper exited 1")

	if v.Status != StatusFailed || v.TranscriptionStatus != StatusFailed {
		t.Errorf("Expected failed, got %s/%s", v.Status, v.TranscriptionStatus)
	}
	if v.QuestionStatus != StatusPending {
		t.Errorf("Expected questions pending, got %s", v.QuestionStatus)
	}
	if v.ErrorMessage != "whisper exited 1" {
		t.Errorf("Unexpected error message %q", v.ErrorMessage)
	}

	v.Reset(ctx)
	if v.Status != StatusPending || v.TranscriptionStatus != StatusPending || v.ErrorMessage != "" {
		t.Errorf("Reset did not clear state: %+v", v)
	}
}

func TestQuestionRerunOnCompletedVideo(t *testing.T) {
	ctx := context.Background()
	v := NewVideo("t", "a.mp4", 1)
	v.Status, v.TranscriptionStatus, v.QuestionStatus = StatusCompleted, StatusCompleted, StatusFailed

	v.ResetQuestions(ctx)
	if err := v.StartQuestions(ctx); err != nil {
		t.Fatalf("StartQuestions: %v", err)
	}
	if v.Status != StatusProcessing || v.QuestionStatus != StatusProcessing || v.TranscriptionStatus != StatusCompleted {
		t.Errorf("Unexpected statuses %s/%s/%s", v.Status, v.TranscriptionStatus, v.QuestionStatus)
	}
}

func TestTransitionIgnoresCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := Transition(ctx, StatusProcessing, EventFail)
	if err != nil || got != StatusFailed {
		t.Errorf("Expected failed with cancelled context, got %s %v", got, err)
	}
}

func TestFileStoreValidate(t *testing.T) {
	fs := NewFileStore(testStorage(t))
	if err := fs.Validate("a.MP4", 10); err != nil {
		t.Errorf("Expected mp4 accepted, got %v", err)
	}
	for name, size := range map[string]int64{"a.exe": 10, "noext": 10, "a.mp4": 0, "big.mp4": 1 << 20} {
		if err := fs.Validate(name, size); !errors.Is(err, types.ErrValidation) {
			t.Errorf("Validate(%q, %d): expected validation error, got %v", name, size, err)
		}
	}
}
