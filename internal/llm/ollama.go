package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"codeberg.org/snonux/glossarymaker/internal/logging"
)

// Ollama generates text with a model served by a local Ollama server
type Ollama struct {
	client *resty.Client
	host   string
	model  string
}

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	System  string         `json:"system,omitempty"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Format  string         `json:"format,omitempty"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// NewOllama creates a backend for the Ollama server at host
func NewOllama(host, model string) *Ollama {
	host = strings.TrimRight(host, "/")
	return &Ollama{
		client: resty.New().
			SetBaseURL(host).
			SetTimeout(20*time.Minute).
			SetHeader("Content-Type", "application/json"),
		host:  host,
		model: model,
	}
}

// Name implements Backend
func (o *Ollama) Name() string {
	return "ollama/" + o.model
}

// Generate implements Backend
func (o *Ollama) Generate(ctx context.Context, req Request) (string, error) {
	body := ollamaGenerateRequest{
		Model:  o.model,
		System: req.System,
		Prompt: req.Prompt,
		Stream: false,
		Options: map[string]any{
			"temperature": 0.2,
			"num_ctx":     8192,
		},
	}
	if req.JSON {
		body.Format = "json"
	}

	var out ollamaGenerateResponse
	resp, err := o.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		SetError(&out).
		Post("/api/generate")
	if err != nil {
		return "", fmt.Errorf("ollama: failed to reach %s: %w", o.host, err)
	}
	if resp.IsError() {
		if out.Error != "" {
			return "", fmt.Errorf("ollama: status %d: %s", resp.StatusCode(), out.Error)
		}
		return "", fmt.Errorf("ollama: status %d (check if model '%s' is pulled)", resp.StatusCode(), o.model)
	}

	text := strings.TrimSpace(out.Response)
	if text == "" {
		return "", fmt.Errorf("ollama: %w", ErrEmptyResponse)
	}
	return text, nil
}

// ListModels returns the names of the models available on the server
func (o *Ollama) ListModels(ctx context.Context) ([]string, error) {
	var tags ollamaTagsResponse
	resp, err := o.client.R().
		SetContext(ctx).
		SetResult(&tags).
		Get("/api/tags")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ollama: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("ollama tags failed with status: %d", resp.StatusCode())
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// EnsureModelLoaded pulls the model when the server does not have it yet
func (o *Ollama) EnsureModelLoaded(ctx context.Context) error {
	logger := logging.Default()
	logger.Info("Checking Ollama model", "model", o.model, "host", o.host)

	names, err := o.ListModels(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		if name == o.model || name == o.model+":latest" {
			logger.Info("Model already loaded in Ollama")
			return nil
		}
	}

	logger.Warn("Model not found, starting download (this can take minutes)", "model", o.model)

	resp, err := o.client.R().
		SetContext(ctx).
		SetBody(map[string]any{"name": o.model, "stream": false}).
		Post("/api/pull")
	if err != nil {
		return fmt.Errorf("failed to trigger pull: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("pull failed with status: %d", resp.StatusCode())
	}

	logger.Info("Model downloaded successfully", "model", o.model)
	return nil
}
