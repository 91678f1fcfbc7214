package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/glossarymaker/internal/ambiguity"
	"codeberg.org/snonux/glossarymaker/internal/analysis"
	"codeberg.org/snonux/glossarymaker/internal/chapter"
	"codeberg.org/snonux/glossarymaker/internal/config"
	"codeberg.org/snonux/glossarymaker/internal/dictionary"
	"codeberg.org/snonux/glossarymaker/internal/export"
	"codeberg.org/snonux/glossarymaker/internal/glossary"
	"codeberg.org/snonux/glossarymaker/internal/hanja"
	"codeberg.org/snonux/glossarymaker/internal/llm"
	"codeberg.org/snonux/glossarymaker/internal/logging"
)

// ErrMissingCredential is returned when a cloud provider has no usable API key
var ErrMissingCredential = errors.New("missing API credential")

// Dictionary answers both the ambiguity detector and name correction
type Dictionary interface {
	ambiguity.Lookuper
	glossary.Lexicon
}

// Options override collaborators of a run
type Options struct {
	// Backend replaces the provider selected by the config
	Backend llm.Backend
	// Dictionary replaces the krdict client used in local mode
	Dictionary Dictionary
	// Notifier receives milestones; defaults to LogNotifier
	Notifier Notifier
	// Out receives the final statistics; defaults to stdout
	Out io.Writer
}

// Summary describes a finished run
type Summary struct {
	Chapters     int
	Chunks       int
	FailedChunks int
	Nouns        int
	Workbooks    *export.Result
}

// Pipeline runs the glossary steps for one config
type Pipeline struct {
	cfg    *config.Config
	opts   Options
	store  *glossary.Store
	errlog *errorLog
}

// New creates a pipeline
func New(cfg *config.Config, opts Options) *Pipeline {
	if opts.Notifier == nil {
		opts.Notifier = LogNotifier{}
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Pipeline{
		cfg:    cfg,
		opts:   opts,
		store:  glossary.NewStore(cfg.NounsJSONFile),
		errlog: newErrorLog(cfg.ErrorLog),
	}
}

// CheckCredential fails with ErrMissingCredential when a cloud provider
// has no usable key and returns the key otherwise
func CheckCredential(cfg *config.Config) (string, error) {
	if cfg.UsesLocalModel() {
		return "", nil
	}
	key := cfg.ResolveAPIKey()
	if key == "" || config.IsPlaceholderKey(key) {
		return "", fmt.Errorf("%w for provider %s", ErrMissingCredential, cfg.Provider)
	}
	return key, nil
}

// Run executes every step
// A run without chapters or without any noun finishes without error and
// without writing workbooks.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	logger := logging.Default()
	cfg := p.cfg
	summary := &Summary{}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	genre, desc, _ := cfg.ResolveGenre()
	logger.Info("Starting glossary run", "genre", genre, "description", desc, "provider", cfg.Provider, "local", cfg.UsesLocalModel())

	key, err := CheckCredential(cfg)
	if err != nil {
		p.opts.Notifier.Notify("API Key Missing", "Set the API key in the config file, the environment or a .env file.")
		return nil, err
	}

	files, err := chapter.ListChapters(cfg.RawsFolder)
	if err != nil && !errors.Is(err, chapter.ErrFolderNotFound) {
		return nil, err
	}
	if len(files) == 0 {
		logger.Warn("No chapter files found", "folder", cfg.RawsFolder)
		p.opts.Notifier.Notify("Script Failed", fmt.Sprintf("Could not find any text files in '%s'.", cfg.RawsFolder))
		return summary, nil
	}
	summary.Chapters = len(files)

	engine, err := p.newEngine(ctx, key)
	if err != nil {
		return nil, err
	}

	// Step 0
	nouns, err := p.loadMaster()
	if err != nil {
		return nil, err
	}

	// Step 1
	nouns, text, err := p.extract(ctx, engine, files, nouns, summary)
	if err != nil {
		return summary, err
	}
	if len(nouns) == 0 {
		logger.Warn("No nouns found in the text files")
		p.opts.Notifier.Notify("No Nouns Found", "No proper nouns were found in the text files.")
		return summary, nil
	}

	// Step 2
	nouns, err = p.frequencies(ctx, nouns, text)
	if err != nil {
		return summary, err
	}
	if len(nouns) == 0 {
		logger.Warn("No extracted noun occurs in the text files")
		p.opts.Notifier.Notify("No Nouns Found", "None of the extracted nouns occur in the text files.")
		return summary, nil
	}

	// Steps 3 to 6
	steps := []struct {
		name    string
		enabled bool
		run     func(context.Context, []glossary.Noun) error
	}{
		{"categorize", cfg.DoCategorization, engine.Categorize},
		{"translate", cfg.DoTranslation, engine.Translate},
		{"guess hanja", cfg.GuessHanja, engine.GuessHanja},
	}
	for _, step := range steps {
		if !step.enabled {
			logger.Info("Skipping step", "step", step.name)
			continue
		}
		stepErr := step.run(ctx, nouns)
		if err := p.save(nouns); err != nil {
			return summary, err
		}
		if stepErr != nil {
			return summary, p.fail(stepErr)
		}
	}

	// Step 7
	if cfg.SimplifiedChineseConversion {
		for i := range nouns {
			nouns[i].Chinese = hanja.ToSimplified(nouns[i].Hanja)
		}
		if err := p.save(nouns); err != nil {
			return summary, err
		}
	}

	// Step 8
	res, err := export.WriteWorkbooks(cfg.OutputExcel, nouns, cfg.Categories, cfg.SimplifiedChineseConversion)
	if err != nil {
		return summary, err
	}
	summary.Nouns = len(nouns)
	summary.Workbooks = res

	p.printStatistics(nouns)
	p.opts.Notifier.Notify("Noun Processing Complete!", fmt.Sprintf("Processed %d nouns into %s", len(nouns), cfg.OutputExcel))
	return summary, nil
}

func (p *Pipeline) newEngine(ctx context.Context, key string) (*analysis.Engine, error) {
	backend := p.opts.Backend
	if backend == nil {
		b, err := llm.New(ctx, p.cfg, key)
		if err != nil {
			if errors.Is(err, llm.ErrInvalidCredential) {
				return nil, fmt.Errorf("%w: %v", ErrMissingCredential, err)
			}
			return nil, err
		}
		if o, ok := b.(*llm.Ollama); ok {
			if err := o.EnsureModelLoaded(ctx); err != nil {
				return nil, err
			}
		}
		backend = b
	}

	client := llm.NewResilient(backend, llm.ResilientOptions{
		MaxAttempts: p.cfg.MaxRetries,
		Delay:       p.cfg.RetryDelay,
	})
	return analysis.New(client, p.cfg), nil
}

// loadMaster reads the working glossary and merges the reference file
func (p *Pipeline) loadMaster() ([]glossary.Noun, error) {
	logger := logging.Default()

	nouns, err := p.store.Load()
	if err != nil {
		logger.Warn("Could not load working glossary, starting fresh", "path", p.store.Path(), "err", err)
		nouns = nil
	} else {
		logger.Info("Loaded working glossary", "nouns", len(nouns), "path", p.store.Path())
	}

	if ref := strings.TrimSpace(p.cfg.ReferenceFile); ref != "" {
		refs, err := glossary.LoadReference(ref)
		switch {
		case err != nil:
			logger.Warn("Skipping reference file", "path", ref, "err", err)
		default:
			var added int
			nouns, added = glossary.MergeReference(nouns, refs)
			logger.Info("Merged reference file", "path", ref, "entries", len(refs), "added", added)
		}
	}

	if err := p.save(nouns); err != nil {
		return nil, err
	}
	return nouns, nil
}

// extract runs the regex and model passes over every chunk
// It returns the grown glossary and the combined text of all chunks.
func (p *Pipeline) extract(ctx context.Context, engine *analysis.Engine, files []string, nouns []glossary.Noun, summary *Summary) ([]glossary.Noun, string, error) {
	logger := logging.Default()
	chunks := chapter.GroupIntoChunks(files, p.cfg.ChaptersAnalyzed)
	summary.Chunks = len(chunks)
	logger.Info("Grouped chapters into chunks", "chapters", len(files), "chunks", len(chunks), "size", p.cfg.ChaptersAnalyzed)

	known := glossary.Hanguls(nouns)
	texts := make([]string, 0, len(chunks))

	for i, chunk := range chunks {
		num := i + 1
		names := make([]string, len(chunk))
		for j, f := range chunk {
			names[j] = filepath.Base(f)
		}
		logger.Info("Processing chunk", "chunk", num, "of", len(chunks), "files", strings.Join(names, ","))

		text := chapter.CombineChapters(chunk)
		texts = append(texts, text)

		if p.cfg.HanjaIdentification {
			found := 0
			for _, n := range glossary.ExtractHanjaPairs(text) {
				if _, ok := known[n.Hangul]; ok {
					continue
				}
				nouns = append(nouns, n)
				known[n.Hangul] = struct{}{}
				found++
			}
			if found > 0 {
				logger.Info("Regex found hanja nouns", "chunk", num, "nouns", found)
			}
		}

		extracted, err := engine.ExtractChunk(ctx, num, text, known)
		switch {
		case err == nil:
			for _, n := range extracted {
				nouns = append(nouns, n)
				known[n.Hangul] = struct{}{}
			}
		case errors.Is(err, llm.ErrInvalidCredential):
			p.logChunk(num, msgInvalidKey)
			_ = p.save(nouns)
			return nouns, "", p.fail(err)
		case ctx.Err() != nil:
			_ = p.save(nouns)
			return nouns, "", ctx.Err()
		default:
			logger.Error("Chunk failed", "chunk", num, "err", err)
			p.logChunk(num, err.Error())
			summary.FailedChunks++
		}

		if err := p.save(nouns); err != nil {
			return nouns, "", err
		}
	}

	return nouns, strings.Join(texts, "\n"), nil
}

// frequencies counts, filters, cleans and sorts the glossary
func (p *Pipeline) frequencies(ctx context.Context, nouns []glossary.Noun, text string) ([]glossary.Noun, error) {
	logger := logging.Default()

	glossary.CountFrequencies(nouns, text)
	nouns, removed := glossary.FilterZeroFrequency(nouns)
	if removed > 0 {
		logger.Info("Removed nouns that never occur", "removed", removed)
	}

	if p.cfg.UsesLocalModel() {
		dict, closeDict, err := p.dictionary()
		if err != nil {
			return nil, err
		}
		defer closeDict()

		nouns = glossary.CorrectNames(nouns, dict)
		nouns, _ = ambiguity.NewDetector(dict, nouns).Run(ctx, nouns)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	glossary.Sort(nouns)
	if err := p.save(nouns); err != nil {
		return nil, err
	}
	return nouns, nil
}

// dictionary returns the configured dictionary and a function releasing it
func (p *Pipeline) dictionary() (Dictionary, func(), error) {
	if p.opts.Dictionary != nil {
		return p.opts.Dictionary, func() {}, nil
	}

	cache, err := dictionary.OpenCache(p.cfg.DictionaryCache)
	if err != nil {
		return nil, nil, err
	}
	client := dictionary.NewClient(p.cfg.ResolveDictAPIKey(), cache)
	return client, func() { _ = cache.Close() }, nil
}

func (p *Pipeline) save(nouns []glossary.Noun) error {
	if err := p.store.Save(nouns); err != nil {
		return err
	}
	logging.Default().Debug("Saved working glossary", "nouns", len(nouns), "path", p.store.Path())
	return nil
}

func (p *Pipeline) logChunk(chunk int, message string) {
	message = strings.Join(strings.Fields(message), " ")
	if err := p.errlog.ChunkFailed(chunk, message); err != nil {
		logging.Default().Warn("Could not write error log", "err", err)
	}
}

// fail notifies about errors that stop the run
func (p *Pipeline) fail(err error) error {
	if errors.Is(err, llm.ErrInvalidCredential) {
		p.opts.Notifier.Notify("Invalid API Key", "The API rejected the configured key.")
	}
	return err
}

func (p *Pipeline) printStatistics(nouns []glossary.Noun) {
	counts := make(map[string]int)
	for _, n := range nouns {
		counts[n.Category]++
	}

	out := p.opts.Out
	fmt.Fprintf(out, "\n=== Final Statistics ===\n")
	fmt.Fprintf(out, "Total nouns: %d\n", len(nouns))
	for _, category := range p.cfg.Categories {
		if c := counts[category]; c > 0 {
			fmt.Fprintf(out, "  - %s: %d\n", category, c)
		}
	}
	fmt.Fprintf(out, "Workbooks: %s, %s\n", p.cfg.OutputExcel, export.MasterPath(p.cfg.OutputExcel))
}
