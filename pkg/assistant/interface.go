package assistant

import (
	"context"
	"errors"
)

var ErrEmptyCompletion = errors.New("model returned an empty completion")

// Completer generates a text completion for a single free-text prompt.
// Implementations wrap one backend (an HTTP model server or a local
// process); callers bound each call with a context deadline.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	// Name identifies the backend, e.g. "ollama".
	Name() string
	// Model is the model the backend is configured to use.
	Model() string
}
