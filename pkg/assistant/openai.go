package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/xpanvictor/vidquiz/internal/config"
)

type openAIAssistant struct {
	client openai.Client
	model  string
}

// Complete implements Completer.
func (o *openAIAssistant) Complete(ctx context.Context, prompt string) (string, error) {
	chatCompletion, err := o.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
			Model: openai.ChatModel(o.model),
		},
	)
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}
	if len(chatCompletion.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	content := strings.TrimSpace(chatCompletion.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}

func (o *openAIAssistant) Name() string  { return "openai" }
func (o *openAIAssistant) Model() string { return o.model }

// NewOpenAICompleter talks to the OpenAI API, or to any compatible server
// when BaseURL is set.
func NewOpenAICompleter(cfg config.OpenAIConfig) Completer {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &openAIAssistant{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}
}
