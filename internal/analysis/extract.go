package analysis

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"codeberg.org/snonux/glossarymaker/internal/glossary"
	"codeberg.org/snonux/glossarymaker/internal/llm"
	"codeberg.org/snonux/glossarymaker/internal/logging"
)

type extractedNoun struct {
	Hangul string `json:"hangul"`
	Hanja  string `json:"hanja"`
	Label  string `json:"label,omitempty"`
}

// ExtractChunk asks the model for the proper nouns in text
//
// Nouns shorter than two characters and hanguls in known are dropped.
// With the local model every noun also gets a category from its label.
func (e *Engine) ExtractChunk(ctx context.Context, chunk int, text string, known map[string]struct{}) ([]glossary.Noun, error) {
	local := e.cfg.UsesLocalModel()

	system := extractionPrompt(e.genre, e.cfg.HanjaIdentification)
	if local {
		system = localExtractionPrompt(e.genre)
	}

	var items []extractedNoun
	req := llm.Request{System: system, Prompt: text, JSON: true}
	_, err := e.client.GenerateValid(ctx, req, func(raw string) error {
		parsed, err := llm.ParseJSONArray[extractedNoun](raw)
		if err != nil {
			return err
		}
		items = parsed
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("chunk %d: %w", chunk, err)
	}

	seen := make(map[string]struct{}, len(items))
	nouns := make([]glossary.Noun, 0, len(items))
	for _, item := range items {
		hangul := strings.TrimSpace(item.Hangul)
		if utf8.RuneCountInString(hangul) <= 1 {
			continue
		}
		if _, ok := known[hangul]; ok {
			continue
		}
		if _, ok := seen[hangul]; ok {
			continue
		}
		seen[hangul] = struct{}{}

		n := glossary.Noun{Hangul: hangul, Hanja: strings.TrimSpace(item.Hanja)}
		if local {
			n.Category = glossary.MapLocalCategory(item.Label)
		}
		nouns = append(nouns, n)
	}

	logging.Default().Info("Extracted nouns", "chunk", chunk, "returned", len(items), "new", len(nouns))
	return nouns, nil
}
