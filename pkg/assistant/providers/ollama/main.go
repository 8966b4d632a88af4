package ollama

import (
	"context"
	"fmt"

	"github.com/ollama/ollama/api"
	"github.com/presbrey/ollamafarm"
	"github.com/xpanvictor/vidquiz/internal/config"
)

// OllamaProvider spreads requests over every registered ollama server,
// picking the first one the farm considers online.
type OllamaProvider struct {
	ollamafarm *ollamafarm.Farm
}

func New(cfg config.OllamaConfig) (OllamaProvider, error) {
	farm := ollamafarm.New()

	// register servers
	for _, u := range cfg.URLs {
		if err := farm.RegisterURL(u, nil); err != nil {
			return OllamaProvider{}, fmt.Errorf("register ollama server %s: %w", u, err)
		}
	}

	return OllamaProvider{
		ollamafarm: farm,
	}, nil
}

func (o *OllamaProvider) client() (*api.Client, error) {
	// pick first available client
	ollama := o.ollamafarm.First(&ollamafarm.Where{Offline: false})
	if ollama == nil {
		return nil, fmt.Errorf("no ollama server online")
	}
	return ollama.Client(), nil
}

// Generate runs a non-chat completion and hands each streamed chunk to fn.
func (o *OllamaProvider) Generate(
	ctx context.Context,
	req api.GenerateRequest,
	fn api.GenerateResponseFunc,
) error {
	c, err := o.client()
	if err != nil {
		return fmt.Errorf("model %v: %w", req.Model, err)
	}
	return c.Generate(ctx, &req, fn)
}

// GetAvailableModels lists the models pulled on the selected server.
func (o *OllamaProvider) GetAvailableModels(ctx context.Context) ([]string, error) {
	c, err := o.client()
	if err != nil {
		return nil, err
	}
	list, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
