package analysis

import (
	"context"
	"strings"

	"codeberg.org/snonux/glossarymaker/internal/config"
	"codeberg.org/snonux/glossarymaker/internal/glossary"
	"codeberg.org/snonux/glossarymaker/internal/logging"
)

type translationInput struct {
	Hangul   string `json:"hangul"`
	Hanja    string `json:"hanja"`
	Category string `json:"category"`
}

type translationOutput struct {
	Hangul   string `json:"hangul"`
	Hanja    string `json:"hanja"`
	Category string `json:"category"`
	English  string `json:"english"`
}

// Translate fills in English for every noun that has none
// Failed batches stay untranslated.
func (e *Engine) Translate(ctx context.Context, nouns []glossary.Noun) error {
	indices := pending(nouns, func(n glossary.Noun) bool {
		return strings.TrimSpace(n.English) == ""
	})
	logger := logging.Default()
	if len(indices) == 0 {
		logger.Info("All nouns already translated")
		return nil
	}
	logger.Info("Starting translation", "nouns", len(indices), "skipped", len(nouns)-len(indices))

	system := translationPrompt(e.genre)
	err := e.eachBatch(ctx, "translate", indices, e.cfg.TranslationBatchSize,
		func(ctx context.Context, num, total int, batch []int) error {
			input := make([]translationInput, len(batch))
			for i, idx := range batch {
				category := nouns[idx].Category
				if category == "" {
					category = config.CategoryMisc
				}
				input[i] = translationInput{Hangul: nouns[idx].Hangul, Hanja: nouns[idx].Hanja, Category: category}
			}

			out, err := requestBatch[translationInput, translationOutput](ctx, e.client, system, input)
			if err != nil {
				return err
			}

			for i, idx := range batch {
				nouns[idx].English = strings.TrimSpace(out[i].English)
			}
			return nil
		})

	logger.Info("Translation complete")
	return err
}
