package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/CTAG07/Trigram/pkg/corpus"
	"github.com/CTAG07/Trigram/pkg/trigram"
	"github.com/natefinch/atomic"
)

// Title blocks of the default corpus, skipped along with everything before
// them.
const (
	titleHound = `
                          THE HOUND OF THE BASKERVILLES

                               Arthur Conan Doyle
          CHAPTER I
          Mr. Sherlock Holmes

`
	titleSign = `                              THE SIGN OF THE FOUR

                               Arthur Conan Doyle

          CHAPTER I
          The Science of Deduction

`
	titleStudy = `
                               A STUDY IN SCARLET

                               Arthur Conan Doyle
          CHAPTER I
          Mr. Sherlock Holmes

`
	titleValley = `
                               THE VALLEY OF FEAR

                               Arthur Conan Doyle
    CHAPTER I
          The Warning

`
)

// Config is the top-level configuration of a generation run.
type Config struct {
	LogLevel    string          `json:"log_level"`
	StoryLength int             `json:"story_length"`
	LineWords   int             `json:"line_words"`
	OutputPath  string          `json:"output_path"`
	Seed        uint64          `json:"seed"`         // 0 picks a random seed
	ArchivePath string          `json:"archive_path"` // empty disables the archive
	Corpus      []corpus.Source `json:"corpus"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:    "info",
		StoryLength: 2000,
		LineWords:   trigram.DefaultLineWords,
		OutputPath:  "./Readme.txt",
		ArchivePath: "./data/stories.db",
		Corpus: []corpus.Source{
			{Path: "./data/houn.txt", Header: titleHound},
			{Path: "./data/sign.txt", Header: titleSign},
			{Path: "./data/stud.txt", Header: titleStudy},
			{Path: "./data/vall.txt", Header: titleValley},
		},
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// The run can still go ahead with defaults.
				fmt.Printf("warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Decode the corpus list into a fresh slice so entries never inherit
	// fields from the default documents.
	defaultCorpus := config.Corpus
	config.Corpus = nil
	if err = json.Unmarshal(file, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Corpus == nil {
		config.Corpus = defaultCorpus
	}

	if err = config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.StoryLength < 1 {
		return fmt.Errorf("story_length must be at least 1, got %d", c.StoryLength)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output_path is required")
	}
	if len(c.Corpus) == 0 {
		return fmt.Errorf("corpus must list at least one document")
	}
	return nil
}

// logLevel maps the configured level name to a slog.Level, defaulting to info.
func (c *Config) logLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
