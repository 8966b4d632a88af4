package assistant

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/xpanvictor/vidquiz/internal/config"
)

type slowCompleter struct{ delay time.Duration }

func (s slowCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	select {
	case <-time.After(s.delay):
		return "done", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
func (s slowCompleter) Name() string  { return "slow" }
func (s slowCompleter) Model() string { return "m" }

func TestWithTimeoutCutsOffSlowCalls(t *testing.T) {
	c := WithTimeout(slowCompleter{delay: time.Second}, 20*time.Millisecond)

	_, err := c.Complete(context.Background(), "hi")
	if !errors.Is(err, ErrCompletionTimeout) {
		t.Errorf("Expected timeout error, got %v", err)
	}
	if c.Name() != "slow" || c.Model() != "m" {
		t.Errorf("Expected wrapped identity, got %s/%s", c.Name(), c.Model())
	}
}

func TestWithTimeoutPassesFastCalls(t *testing.T) {
	c := WithTimeout(slowCompleter{delay: time.Millisecond}, time.Second)

	out, err := c.Complete(context.Background(), "hi")
	if err != nil || out != "done" {
		t.Errorf("Expected done, got %q %v", out, err)
	}
}

func TestWithTimeoutZeroIsNoop(t *testing.T) {
	inner := slowCompleter{}
	if c := WithTimeout(inner, 0); c != Completer(inner) {
		t.Error("Expected completer returned unchanged")
	}
}

func TestLocalCompleterBuildArgs(t *testing.T) {
	l := &localProcess{binary: "llama-cli", modelPath: "/m.gguf", args: []string{"-m", "{model}", "-p", "{prompt}"}}
	got := l.buildArgs("say hi")
	want := []string{"-m", "/m.gguf", "-p", "say hi"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Arg %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	appended := (&localProcess{args: []string{"--quiet"}}).buildArgs("p")
	if len(appended) != 2 || appended[1] != "p" {
		t.Errorf("Expected prompt appended, got %v", appended)
	}
}

func TestLocalCompleterRunsProcess(t *testing.T) {
	if _, err := exec.LookPath("echo"); err != nil {
		t.Skip("echo not available")
	}
	c := NewLocalCompleter(config.LocalLLMConfig{Binary: "echo", Args: []string{"{prompt}"}})

	out, err := c.Complete(context.Background(), "hello model")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if out != "hello model" {
		t.Errorf("Expected echoed prompt, got %q", out)
	}
}

func TestLocalCompleterReportsFailure(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	c := NewLocalCompleter(config.LocalLLMConfig{Binary: "sh", Args: []string{"-c", "echo model missing >&2; exit 3"}})

	_, err := c.Complete(context.Background(), "ignored")
	if err == nil {
		t.Fatal("Expected failure")
	}
	if want := "model missing"; !strings.Contains(err.Error(), want) {
		t.Errorf("Expected stderr tail %q in %v", want, err)
	}
}
