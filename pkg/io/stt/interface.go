package stt

import (
	"context"
)

// Transcriber runs a speech-to-text tool over a media file and returns the
// tool's raw JSON result: an object with a "segments" list of
// {start, end, text} fragments.
type Transcriber interface {
	Transcribe(ctx context.Context, mediaPath string) ([]byte, error)
	Name() string
}
