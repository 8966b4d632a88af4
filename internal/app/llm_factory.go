package app

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/xpanvictor/vidquiz/internal/config"
	"github.com/xpanvictor/vidquiz/pkg/Logger"
	"github.com/xpanvictor/vidquiz/pkg/assistant"
	geminiAdapter "github.com/xpanvictor/vidquiz/pkg/assistant/adapters/gemini"
	ollamaAdapter "github.com/xpanvictor/vidquiz/pkg/assistant/adapters/ollama"
	"github.com/xpanvictor/vidquiz/pkg/assistant/providers/gemini"
	olp "github.com/xpanvictor/vidquiz/pkg/assistant/providers/ollama"
	"github.com/xpanvictor/vidquiz/pkg/assistant/router"
)

// modelProbeTimeout bounds the startup check against the ollama farm.
const modelProbeTimeout = 5 * time.Second

// LLMRouterFactory creates LLM routers with every configured backend
type LLMRouterFactory struct {
	config config.LLMConfig
	logger *Logger.Logger

	closers []func() error
}

// NewLLMRouterFactory creates a new LLM router factory
func NewLLMRouterFactory(cfg config.LLMConfig, logger *Logger.Logger) *LLMRouterFactory {
	return &LLMRouterFactory{
		config: cfg,
		logger: logger.Named("llm"),
	}
}

// CreateRouter builds one completer per configured backend and routes to
// config.Backend by default.
func (f *LLMRouterFactory) CreateRouter() (*router.Mux, error) {
	var completers []assistant.Completer

	if len(f.config.Ollama.URLs) > 0 {
		c, err := f.createOllama()
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama completer: %w", err)
		}
		completers = append(completers, assistant.WithTimeout(c, f.config.HTTPTimeout))
	}

	if f.config.OpenAI.APIKey != "" || f.config.OpenAI.BaseURL != "" {
		c := assistant.NewOpenAICompleter(f.config.OpenAI)
		completers = append(completers, assistant.WithTimeout(c, f.config.HTTPTimeout))
		f.logger.Infof("openai completer created, model: %s", c.Model())
	}

	if f.config.Gemini.APIKey != "" {
		provider, err := gemini.New(f.config.Gemini)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini provider: %w", err)
		}
		f.closers = append(f.closers, provider.Close)
		c := geminiAdapter.New(provider, f.config.Gemini.Model)
		completers = append(completers, assistant.WithTimeout(c, f.config.HTTPTimeout))
		f.logger.Infof("gemini completer created, model: %s", c.Model())
	}

	if f.config.Local.ModelPath != "" {
		c := assistant.NewLocalCompleter(f.config.Local)
		completers = append(completers, assistant.WithTimeout(c, f.config.LocalTimeout))
		f.logger.Infof("local completer created, binary: %s, model: %s", f.config.Local.Binary, c.Model())
	}

	if len(completers) == 0 {
		return nil, fmt.Errorf("no LLM backends configured")
	}

	mux, err := router.New(f.config.Backend, completers)
	if err != nil {
		return nil, err
	}
	f.logger.Infof("LLM router created with backends %v, default %s", mux.Backends(), mux.Name())
	return mux, nil
}

// Close releases provider clients opened by CreateRouter.
func (f *LLMRouterFactory) Close() error {
	var firstErr error
	for _, c := range f.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	f.closers = nil
	return firstErr
}

func (f *LLMRouterFactory) createOllama() (assistant.Completer, error) {
	provider, err := olp.New(f.config.Ollama)
	if err != nil {
		return nil, err
	}

	// a missing model only warns, the server may still be starting
	ctx, cancel := context.WithTimeout(context.Background(), modelProbeTimeout)
	defer cancel()
	models, err := provider.GetAvailableModels(ctx)
	switch {
	case err != nil:
		f.logger.Warnf("could not list ollama models: %v", err)
	case !slices.Contains(models, f.config.Ollama.Model):
		f.logger.Warnf("ollama model %s not available, have %v", f.config.Ollama.Model, models)
	}

	f.logger.Infof("ollama completer created for %v, model: %s", f.config.Ollama.URLs, f.config.Ollama.Model)
	return ollamaAdapter.New(provider, f.config.Ollama.Model), nil
}
