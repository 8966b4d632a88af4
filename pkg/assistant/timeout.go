package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrCompletionTimeout = errors.New("completion timed out")

type timeoutCompleter struct {
	Completer
	timeout time.Duration
}

// WithTimeout bounds every Complete call on c to d. A call cut off by the
// deadline fails with ErrCompletionTimeout.
func WithTimeout(c Completer, d time.Duration) Completer {
	if d <= 0 {
		return c
	}
	return &timeoutCompleter{Completer: c, timeout: d}
}

func (t *timeoutCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	out, err := t.Completer.Complete(ctx, prompt)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("%w after %s: %w", ErrCompletionTimeout, t.timeout, err)
	}
	return out, err
}
