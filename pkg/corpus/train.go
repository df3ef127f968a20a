package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/CTAG07/Trigram/pkg/trigram"
)

// ctxCheckInterval is how many tokens are read between context checks.
const ctxCheckInterval = 4096

// TrainStats reports what a call to Train fed into the model.
type TrainStats struct {
	Sentences int // Sentences with at least one word
	Words     int // Words read
	Triples   int // Triples recorded
}

// Add accumulates o into s.
func (s *TrainStats) Add(o TrainStats) {
	s.Sentences += o.Sentences
	s.Words += o.Words
	s.Triples += o.Triples
}

// Trainer feeds tokenized text into a trigram.Model.
type Trainer struct {
	tokenizer Tokenizer
	logger    *slog.Logger
}

// NewTrainer returns a Trainer that splits text with tokenizer.
func NewTrainer(tokenizer Tokenizer) *Trainer {
	return &Trainer{
		tokenizer: tokenizer,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger for the Trainer. By default, all logs are
// discarded.
func (t *Trainer) SetLogger(logger *slog.Logger) {
	if logger != nil {
		t.logger = logger
	}
}

// Train reads text from data and records every consecutive word triple of
// every sentence into model. Sentences shorter than three words contribute
// nothing. Triples never span a sentence boundary.
func (t *Trainer) Train(ctx context.Context, model *trigram.Model, data io.Reader) (TrainStats, error) {
	var (
		stats  TrainStats
		window [2]string
		n      int // words in the current sentence
	)

	endSentence := func() {
		if n > 0 {
			stats.Sentences++
		}
		n = 0
	}

	stream := t.tokenizer.NewStream(data)
	for read := 0; ; read++ {
		if read%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}

		token, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return stats, fmt.Errorf("tokenizer error: %w", err)
		}

		if token.EOS {
			endSentence()
			continue
		}

		stats.Words++
		if n >= 2 {
			model.Record(window[0], window[1], token.Text)
			stats.Triples++
		}
		window[0], window[1] = window[1], token.Text
		n++
	}
	endSentence()

	t.logger.DebugContext(ctx, "Training completed",
		slog.Int("sentences_processed", stats.Sentences),
		slog.Int("words_read", stats.Words),
		slog.Int("triples_recorded", stats.Triples),
	)
	return stats, nil
}
