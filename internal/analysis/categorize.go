package analysis

import (
	"context"
	"strings"

	"codeberg.org/snonux/glossarymaker/internal/config"
	"codeberg.org/snonux/glossarymaker/internal/glossary"
	"codeberg.org/snonux/glossarymaker/internal/logging"
)

type categoryInput struct {
	Hangul string `json:"hangul"`
	Hanja  string `json:"hanja"`
}

type categoryOutput struct {
	Hangul   string `json:"hangul"`
	Hanja    string `json:"hanja"`
	Category string `json:"category"`
}

// Categorize assigns a category to every noun that has none
// Batches that fail are set to misc. Unknown categories become misc too.
func (e *Engine) Categorize(ctx context.Context, nouns []glossary.Noun) error {
	indices := pending(nouns, func(n glossary.Noun) bool {
		return strings.TrimSpace(n.Category) == ""
	})
	logger := logging.Default()
	if len(indices) == 0 {
		logger.Info("All nouns already categorized")
		return nil
	}
	logger.Info("Starting categorization", "nouns", len(indices))

	system := categorizationPrompt(e.genre, e.cfg.Categories)
	err := e.eachBatch(ctx, "categorize", indices, e.cfg.CategorizationBatchSize,
		func(ctx context.Context, num, total int, batch []int) error {
			input := make([]categoryInput, len(batch))
			for i, idx := range batch {
				input[i] = categoryInput{Hangul: nouns[idx].Hangul, Hanja: nouns[idx].Hanja}
			}

			out, err := requestBatch[categoryInput, categoryOutput](ctx, e.client, system, input)
			if err != nil {
				if !fatal(ctx, err) {
					for _, idx := range batch {
						nouns[idx].Category = config.CategoryMisc
					}
				}
				return err
			}

			for i, idx := range batch {
				nouns[idx].Category = e.normalizeCategory(out[i].Category)
			}
			return nil
		})

	logger.Info("Categorization complete")
	return err
}

// normalizeCategory maps a model answer onto the configured list
func (e *Engine) normalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	for _, c := range e.cfg.Categories {
		if strings.EqualFold(c, category) {
			return c
		}
	}
	return config.CategoryMisc
}
