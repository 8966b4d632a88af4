package assistant

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/xpanvictor/vidquiz/internal/config"
	"github.com/xpanvictor/vidquiz/pkg/io/tailring"
)

// localProcess runs a CLI completion tool (llama.cpp, gpt4all) once per
// prompt and returns its stdout. The process is killed when ctx ends.
type localProcess struct {
	binary    string
	modelPath string
	args      []string
}

func NewLocalCompleter(cfg config.LocalLLMConfig) Completer {
	return &localProcess{
		binary:    cfg.Binary,
		modelPath: cfg.ModelPath,
		args:      cfg.Args,
	}
}

func (l *localProcess) Name() string  { return "local" }
func (l *localProcess) Model() string { return l.modelPath }

// Complete implements Completer.
func (l *localProcess) Complete(ctx context.Context, prompt string) (string, error) {
	cmd := exec.CommandContext(ctx, l.binary, l.buildArgs(prompt)...)

	var stdout bytes.Buffer
	stderr := tailring.New(4096)
	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%s killed: %w", l.binary, ctx.Err())
		}
		return "", fmt.Errorf("%s failed: %w: %s", l.binary, err, stderr.String())
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}

func (l *localProcess) buildArgs(prompt string) []string {
	args := make([]string, 0, len(l.args)+1)
	promptPlaced := false
	for _, a := range l.args {
		if strings.Contains(a, "{prompt}") {
			promptPlaced = true
		}
		a = strings.ReplaceAll(a, "{model}", l.modelPath)
		a = strings.ReplaceAll(a, "{prompt}", prompt)
		args = append(args, a)
	}
	if !promptPlaced {
		args = append(args, prompt)
	}
	return args
}
