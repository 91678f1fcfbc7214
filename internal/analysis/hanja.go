package analysis

import (
	"context"
	"strings"

	"codeberg.org/snonux/glossarymaker/internal/config"
	"codeberg.org/snonux/glossarymaker/internal/glossary"
	"codeberg.org/snonux/glossarymaker/internal/logging"
)

type hanjaGuess struct {
	Hangul   string `json:"hangul"`
	Hanja    string `json:"hanja"`
	Category string `json:"category"`
	English  string `json:"english"`
}

// GuessHanja predicts hanja for translated nouns that have none
// Only non-empty guesses are applied.
func (e *Engine) GuessHanja(ctx context.Context, nouns []glossary.Noun) error {
	indices := pending(nouns, func(n glossary.Noun) bool {
		return strings.TrimSpace(n.Hanja) == "" && strings.TrimSpace(n.English) != ""
	})
	logger := logging.Default()
	if len(indices) == 0 {
		logger.Info("No nouns need hanja guessing")
		return nil
	}
	logger.Info("Starting hanja guessing", "nouns", len(indices), "skipped", len(nouns)-len(indices))

	system := hanjaGuessPrompt(e.genre)
	guessed := 0
	err := e.eachBatch(ctx, "hanja", indices, e.cfg.HanjaGuessingBatchSize,
		func(ctx context.Context, num, total int, batch []int) error {
			input := make([]hanjaGuess, len(batch))
			for i, idx := range batch {
				category := nouns[idx].Category
				if category == "" {
					category = config.CategoryMisc
				}
				input[i] = hanjaGuess{
					Hangul:   nouns[idx].Hangul,
					Category: category,
					English:  nouns[idx].English,
				}
			}

			out, err := requestBatch[hanjaGuess, hanjaGuess](ctx, e.client, system, input)
			if err != nil {
				return err
			}

			for i, idx := range batch {
				if h := strings.TrimSpace(out[i].Hanja); h != "" {
					nouns[idx].Hanja = h
					guessed++
				}
			}
			return nil
		})

	logger.Info("Hanja guessing complete", "guessed", guessed)
	return err
}
