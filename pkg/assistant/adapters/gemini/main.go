package gemini

import (
	"context"
	"strings"

	"github.com/xpanvictor/vidquiz/pkg/assistant"
	"github.com/xpanvictor/vidquiz/pkg/assistant/providers/gemini"
)

type geminiAdapter struct {
	gp    *gemini.GeminiProvider
	model string
}

// Complete implements assistant.Completer.
func (g *geminiAdapter) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := g.gp.Generate(ctx, g.model, prompt)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", assistant.ErrEmptyCompletion
	}
	return out, nil
}

func (g *geminiAdapter) Name() string  { return "gemini" }
func (g *geminiAdapter) Model() string { return g.model }

func New(provider *gemini.GeminiProvider, model string) assistant.Completer {
	return &geminiAdapter{gp: provider, model: model}
}
