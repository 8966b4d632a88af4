package ollama

import (
	"context"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/xpanvictor/vidquiz/pkg/assistant"
	"github.com/xpanvictor/vidquiz/pkg/assistant/providers/ollama"
)

type ollamaAdapter struct {
	op    ollama.OllamaProvider
	model string
}

// Complete implements assistant.Completer.
func (o *ollamaAdapter) Complete(ctx context.Context, prompt string) (string, error) {
	stream := false
	req := api.GenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: &stream,
	}

	var sb strings.Builder
	err := o.op.Generate(ctx, req, func(gr api.GenerateResponse) error {
		sb.WriteString(gr.Response)
		return nil
	})
	if err != nil {
		return "", err
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", assistant.ErrEmptyCompletion
	}
	return out, nil
}

func (o *ollamaAdapter) Name() string  { return "ollama" }
func (o *ollamaAdapter) Model() string { return o.model }

func New(provider ollama.OllamaProvider, model string) assistant.Completer {
	return &ollamaAdapter{
		op:    provider,
		model: model,
	}
}
