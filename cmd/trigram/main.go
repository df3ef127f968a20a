package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/CTAG07/Trigram/pkg/archive"
	"github.com/CTAG07/Trigram/pkg/corpus"
	"github.com/CTAG07/Trigram/pkg/trigram"
	"github.com/natefinch/atomic"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "./config.json", "Path to the JSON configuration file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *configPath); err != nil {
		slog.Error("Story generation failed", "error", err)
		os.Exit(1)
	}
}

// run trains a model from the configured corpus, writes one story to the
// output file and archives it.
func run(ctx context.Context, configPath string) error {
	config, err := LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: config.logLevel()}))
	logger.Info("Starting run", "version", Version, "commit", Commit, "build_date", BuildDate)

	model, sources, err := trainModel(ctx, logger, config.Corpus)
	if err != nil {
		return err
	}
	stats := model.Stats()
	logger.Info("Model trained",
		"words", stats.Words,
		"pairs", stats.Pairs,
		"triples", stats.Triples,
		"records", stats.Records,
	)

	seed := config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	gen := trigram.NewGenerator(trigram.WithSeed(seed), trigram.WithLineWords(config.LineWords))
	gen.SetLogger(logger)

	var buf bytes.Buffer
	words, err := gen.WriteStory(ctx, &buf, model, config.StoryLength)
	if err != nil {
		if errors.Is(err, trigram.ErrEmptyModel) {
			return fmt.Errorf("corpus produced no triples: %w", err)
		}
		return fmt.Errorf("failed to generate story: %w", err)
	}

	if err = atomic.WriteFile(config.OutputPath, bytes.NewReader(buf.Bytes())); err != nil {
		return fmt.Errorf("failed to write story: %w", err)
	}
	logger.Info("Story written", "path", config.OutputPath, "words", words, "seed", seed)

	if config.ArchivePath == "" {
		return nil
	}
	return archiveStory(ctx, logger, config.ArchivePath, archive.Story{
		Seed:         seed,
		TargetLength: config.StoryLength,
		WordCount:    words,
		ModelWords:   stats.Words,
		ModelTriples: stats.Triples,
		Text:         buf.String(),
		Sources:      sources,
	})
}

// trainModel feeds every corpus document into a fresh model, in order, and
// returns the model with the paths it was trained on.
func trainModel(ctx context.Context, logger *slog.Logger, sources []corpus.Source) (*trigram.Model, []string, error) {
	model := trigram.NewModel()
	trainers := make(map[string]*corpus.Trainer)
	paths := make([]string, 0, len(sources))

	var total corpus.TrainStats
	for _, src := range sources {
		trainer, ok := trainers[src.Tokenizer]
		if !ok {
			tokenizer, err := corpus.NewTokenizer(src.Tokenizer)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", src.Path, err)
			}
			trainer = corpus.NewTrainer(tokenizer)
			trainer.SetLogger(logger)
			trainers[src.Tokenizer] = trainer
		}

		stats, err := trainer.TrainSource(ctx, model, src)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to train on corpus: %w", err)
		}
		total.Add(stats)
		paths = append(paths, src.Path)
	}

	logger.Debug("Corpus consumed",
		"documents", len(paths),
		"sentences", total.Sentences,
		"triples", total.Triples,
	)
	return model, paths, nil
}

func archiveStory(ctx context.Context, logger *slog.Logger, dataSource string, story archive.Story) error {
	dbPath, _, _ := strings.Cut(dataSource, "?")
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	db, err := initDB(dataSource)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close archive", "error", err)
		}
	}()

	if err = archive.SetupSchema(db); err != nil {
		return fmt.Errorf("failed to set up archive schema: %w", err)
	}
	store, err := archive.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to prepare archive: %w", err)
	}
	defer store.Close()
	store.SetLogger(logger)

	if _, err = store.SaveStory(ctx, story); err != nil {
		return fmt.Errorf("failed to archive story: %w", err)
	}
	return nil
}
