package llm

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"codeberg.org/snonux/glossarymaker/internal/config"
)

// Lister prints the text models available to the configured provider
type Lister struct {
	cfg    *config.Config
	apiKey string
}

// NewLister creates a new model lister
func NewLister(cfg *config.Config, apiKey string) *Lister {
	return &Lister{cfg: cfg, apiKey: apiKey}
}

// ListAvailableModels writes the model names of the provider to w
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	var (
		names []string
		err   error
		title string
	)

	switch {
	case l.cfg.UsesLocalModel():
		title = fmt.Sprintf("Ollama models at %s", l.cfg.OllamaHost)
		names, err = NewOllama(l.cfg.OllamaHost, l.cfg.OllamaModel).ListModels(ctx)
	case l.cfg.Provider == config.ProviderOpenAI:
		title = "OpenAI chat models"
		names, err = l.openAIModels(ctx)
	default:
		title = "Gemini models"
		names, err = l.geminiModels(ctx)
	}
	if err != nil {
		return err
	}

	sort.Strings(names)

	fmt.Fprintf(w, "%s:\n", title)
	if len(names) == 0 {
		fmt.Fprintln(w, "  No models found")
		return nil
	}
	for _, name := range names {
		marker := " "
		if name == l.cfg.ModelName || (l.cfg.UsesLocalModel() && name == l.cfg.OllamaModel) {
			marker = "*"
		}
		fmt.Fprintf(w, " %s %s\n", marker, name)
	}
	return nil
}

func (l *Lister) requireKey(provider, env string) error {
	if config.IsPlaceholderKey(l.apiKey) {
		return fmt.Errorf("%s API key not found. Set %s environment variable or configure api_key in %s", provider, env, config.SampleFileName)
	}
	return nil
}

func (l *Lister) openAIModels(ctx context.Context) ([]string, error) {
	if err := l.requireKey("OpenAI", "OPENAI_API_KEY"); err != nil {
		return nil, err
	}

	models, err := openai.NewClient(l.apiKey).ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var names []string
	for _, m := range models.Models {
		if strings.Contains(m.ID, "gpt") || strings.Contains(m.ID, "chat") || strings.HasPrefix(m.ID, "o") {
			names = append(names, m.ID)
		}
	}
	return names, nil
}

func (l *Lister) geminiModels(ctx context.Context) ([]string, error) {
	if err := l.requireKey("Gemini", "GEMINI_API_KEY"); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  l.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	var names []string
	for m, err := range client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
		if !supports(m.SupportedActions, "generateContent") {
			continue
		}
		names = append(names, strings.TrimPrefix(m.Name, "models/"))
	}
	return names, nil
}

func supports(actions []string, action string) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}
