package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"codeberg.org/snonux/glossarymaker/internal/config"
	"codeberg.org/snonux/glossarymaker/internal/glossary"
	"codeberg.org/snonux/glossarymaker/internal/llm"
	"codeberg.org/snonux/glossarymaker/internal/logging"
)

// Engine runs the analysis steps against one backend
type Engine struct {
	client *llm.Resilient
	cfg    *config.Config
	genre  string
}

// New creates an engine
func New(client *llm.Resilient, cfg *config.Config) *Engine {
	genre, desc, fellBack := cfg.ResolveGenre()
	if fellBack {
		logging.Default().Warn("Unknown genre, using default", "genre", cfg.Genre, "default", genre)
	}
	return &Engine{client: client, cfg: cfg, genre: desc}
}

// fatal reports errors that must stop the whole run
func fatal(ctx context.Context, err error) bool {
	return errors.Is(err, llm.ErrInvalidCredential) || ctx.Err() != nil
}

// batchFunc handles one batch of noun indices
type batchFunc func(ctx context.Context, num, total int, indices []int) error

// eachBatch splits indices into batches of size and calls fn for each
// A pause separates consecutive batches. fn errors that are not fatal are
// logged and the next batch continues.
func (e *Engine) eachBatch(ctx context.Context, step string, indices []int, size int, fn batchFunc) error {
	if size < 1 {
		size = 1
	}
	total := (len(indices) + size - 1) / size
	logger := logging.Default()

	for start, num := 0, 1; start < len(indices); start, num = start+size, num+1 {
		end := min(start+size, len(indices))
		logger.Info("Processing batch", "step", step, "batch", num, "of", total, "nouns", end-start)

		if err := fn(ctx, num, total, indices[start:end]); err != nil {
			if fatal(ctx, err) {
				return err
			}
			logger.Warn("Batch failed", "step", step, "batch", num, "err", err)
		}

		if end < len(indices) {
			if err := pause(ctx, e.cfg.BatchPause); err != nil {
				return err
			}
		}
	}
	return nil
}

// pause waits for d or until ctx is done
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// requestBatch sends input as a JSON array and decodes a response of the same length
func requestBatch[In, Out any](ctx context.Context, client *llm.Resilient, system string, input []In) ([]Out, error) {
	data, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("encoding batch: %w", err)
	}

	var out []Out
	req := llm.Request{
		System: system,
		Prompt: "Input JSON array:\n" + string(data),
		JSON:   true,
	}
	_, err = client.GenerateValid(ctx, req, func(raw string) error {
		items, err := llm.ParseJSONArray[Out](raw)
		if err != nil {
			return err
		}
		if len(items) != len(input) {
			return fmt.Errorf("%w: expected %d items, got %d", llm.ErrInvalidResponse, len(input), len(items))
		}
		out = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// pending returns the indices of nouns that need work
func pending(nouns []glossary.Noun, need func(glossary.Noun) bool) []int {
	var indices []int
	for i, n := range nouns {
		if need(n) {
			indices = append(indices, i)
		}
	}
	return indices
}
