package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/xpanvictor/vidquiz/internal/config"
	"google.golang.org/api/option"
)

// GeminiProvider holds the Gemini API client.
type GeminiProvider struct {
	client *genai.Client
}

// New creates a new GeminiProvider instance.
func New(cfg config.GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is not configured")
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini API client: %w", err)
	}

	return &GeminiProvider{
		client: client,
	}, nil
}

// Generate sends one text prompt and concatenates the text parts of the
// first candidate.
func (gp *GeminiProvider) Generate(ctx context.Context, modelName, prompt string) (string, error) {
	if gp.client == nil {
		return "", fmt.Errorf("gemini client is not initialized")
	}

	resp, err := gp.client.GenerativeModel(modelName).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates received")
	}

	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	return out, nil
}

func (gp *GeminiProvider) Close() error {
	return gp.client.Close()
}
