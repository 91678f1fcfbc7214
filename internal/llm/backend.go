package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codeberg.org/snonux/glossarymaker/internal/config"
)

// ErrInvalidCredential marks a request rejected because of the API key
// Such errors are never retried.
var ErrInvalidCredential = errors.New("invalid API credential")

// ErrEmptyResponse is returned when a service answers with no text
var ErrEmptyResponse = errors.New("empty response")

// Request is a single prompt sent to a backend
type Request struct {
	// System carries the instructions
	System string
	// Prompt carries the data to work on
	Prompt string
	// JSON asks the service for a JSON document
	JSON bool
}

// Backend generates text for a request
type Backend interface {
	Generate(ctx context.Context, req Request) (string, error)
	Name() string
}

// authMarkers are error fragments that identify credential failures
var authMarkers = []string{
	"api key not valid",
	"api_key_invalid",
	"invalid api key",
	"incorrect api key",
	"unauthenticated",
	"permission_denied",
}

// IsAuthError reports whether err is caused by a rejected credential
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrInvalidCredential) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range authMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// classify wraps credential failures in ErrInvalidCredential
func classify(name string, err error) error {
	if err == nil {
		return nil
	}
	if IsAuthError(err) && !errors.Is(err, ErrInvalidCredential) {
		return fmt.Errorf("%s: %w: %v", name, ErrInvalidCredential, err)
	}
	return fmt.Errorf("%s: %w", name, err)
}

// New creates the backend selected by cfg
// apiKey is ignored by the local backend.
func New(ctx context.Context, cfg *config.Config, apiKey string) (Backend, error) {
	switch {
	case cfg.UsesLocalModel():
		return NewOllama(cfg.OllamaHost, cfg.OllamaModel), nil
	case cfg.Provider == config.ProviderOpenAI && cfg.OpenAIBaseURL != "":
		return NewOpenAIWithBaseURL(apiKey, cfg.ModelName, cfg.OpenAIBaseURL), nil
	case cfg.Provider == config.ProviderOpenAI:
		return NewOpenAI(apiKey, cfg.ModelName), nil
	case cfg.Provider == config.ProviderGemini:
		return NewGemini(ctx, apiKey, cfg.ModelName)
	}
	return nil, fmt.Errorf("unknown provider '%s'", cfg.Provider)
}
