package trigram

import (
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"
)

// DefaultLineWords is the number of words written between line breaks.
const DefaultLineWords = 24

// maxFallbacks bounds how many random starting words are tried when the
// current one leads to a context without continuations.
const maxFallbacks = 32

var (
	// ErrInvalidLength is returned when a story of less than one word is
	// requested.
	ErrInvalidLength = errors.New("trigram: target length must be at least 1")
	// ErrNoContinuation is returned when no starting word tried by the
	// generator leads to a complete three-word sequence.
	ErrNoContinuation = errors.New("trigram: no continuation found")
)

// Generator turns a trained Model into text. It holds only configuration and
// a random source; each call to Generate, WriteStory or GenerateStream starts
// an independent run with its own record of used sequences.
//
// A Generator is not safe for concurrent use because its random source is
// not.
type Generator struct {
	rng       *rand.Rand
	lineWords int
	logger    *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source used to pick starting words.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		if r != nil {
			g.rng = r
		}
	}
}

// WithSeed seeds a PCG random source. Two generators with the same seed
// produce the same story from the same model.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithLineWords sets how many words are emitted between line breaks. Zero or
// a negative value disables line breaks. It should be a multiple of three,
// otherwise the word count never lands on it exactly and lines are broken at
// its common multiples with three instead.
// Default: 24
func WithLineWords(n int) Option {
	return func(g *Generator) {
		g.lineWords = n
	}
}

// NewGenerator returns a Generator configured by opts. Without WithRand or
// WithSeed it is seeded from the clock.
func NewGenerator(opts ...Option) *Generator {
	now := uint64(time.Now().UnixNano())
	g := &Generator{
		rng:       rand.New(rand.NewPCG(now, now>>1)),
		lineWords: DefaultLineWords,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SetLogger sets the logger for the Generator. By default, all logs are
// discarded.
func (g *Generator) SetLogger(logger *slog.Logger) {
	if logger != nil {
		g.logger = logger
	}
}
