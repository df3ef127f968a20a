package trigram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Sequence is one emitted group of three words.
type Sequence struct {
	Words [3]string
	// Text is the three words joined by single spaces, with a trailing space.
	Text string
	// LineBreak is set when a line break follows this sequence.
	LineBreak bool
}

// story is the state of a single generation run.
type story struct {
	g         *Generator
	model     *Model
	target    int
	firstWord string
	wordCount int
	used      map[string]struct{}
}

func (g *Generator) newStory(model *Model, target int) (*story, error) {
	if target < 1 {
		return nil, ErrInvalidLength
	}
	if model == nil || model.Len() == 0 {
		return nil, ErrEmptyModel
	}
	first, err := model.RandomWord(g.rng)
	if err != nil {
		return nil, err
	}
	return &story{
		g:         g,
		model:     model,
		target:    target,
		firstWord: first,
		used:      make(map[string]struct{}),
	}, nil
}

func (s *story) done() bool {
	return s.wordCount >= s.target
}

// next produces the following sequence of the story and advances its state.
func (s *story) next(ctx context.Context) (Sequence, error) {
	words, err := s.g.nextSequence(ctx, s.model, s.firstWord)
	if err != nil {
		return Sequence{}, err
	}
	text := joinSequence(words)

	if _, dup := s.used[text]; dup {
		// One retry only; a second duplicate is emitted anyway.
		start, err := s.model.RandomWord(s.g.rng)
		if err != nil {
			return Sequence{}, err
		}
		s.g.logger.DebugContext(ctx, "Duplicate sequence, retrying from random word",
			slog.String("sequence", text),
			slog.String("first_word", start),
		)
		if words, err = s.g.nextSequence(ctx, s.model, start); err != nil {
			return Sequence{}, err
		}
		text = joinSequence(words)
	}
	s.used[text] = struct{}{}

	s.wordCount += 3
	seq := Sequence{
		Words:     words,
		Text:      text,
		LineBreak: s.g.lineWords > 0 && s.wordCount%s.g.lineWords == 0,
	}

	if s.firstWord, err = s.g.chain(s.model, words); err != nil {
		return Sequence{}, err
	}
	return seq, nil
}

// nextSequence builds the three-word sequence starting at first. An unknown
// first word is replaced by a random one, and so is any word whose context
// has no continuation.
func (g *Generator) nextSequence(ctx context.Context, model *Model, first string) ([3]string, error) {
	if !model.Contains(first) {
		word, err := model.RandomWord(g.rng)
		if err != nil {
			return [3]string{}, err
		}
		first = word
	}
	for attempt := 0; ; attempt++ {
		if second, ok := model.BestPairContinuation(first); ok {
			if third, ok := model.BestTripleContinuation(first, second); ok {
				return [3]string{first, second, third}, nil
			}
		}
		if attempt >= maxFallbacks {
			return [3]string{}, fmt.Errorf("%w after %d attempts", ErrNoContinuation, attempt+1)
		}
		g.logger.DebugContext(ctx, "Dead end in model, retrying from random word",
			slog.String("first_word", first),
			slog.Int("attempt", attempt),
		)
		word, err := model.RandomWord(g.rng)
		if err != nil {
			return [3]string{}, err
		}
		first = word
	}
}

// chain picks the first word of the sequence following words. The branch
// order matters: a known third word is resolved to its best continuation, a
// known second word passes the third word through unchanged, and otherwise a
// random word is resolved to its best continuation.
func (g *Generator) chain(model *Model, words [3]string) (string, error) {
	second, third := words[1], words[2]
	switch {
	case model.Contains(third):
		if next, ok := model.BestPairContinuation(third); ok {
			return next, nil
		}
		return model.RandomWord(g.rng)
	case model.Contains(second):
		return third, nil
	default:
		word, err := model.RandomWord(g.rng)
		if err != nil {
			return "", err
		}
		if next, ok := model.BestPairContinuation(word); ok {
			return next, nil
		}
		return word, nil
	}
}

func joinSequence(words [3]string) string {
	return words[0] + " " + words[1] + " " + words[2] + " "
}

// WriteStory generates a story of at least length words from model and
// writes it to w, breaking lines as configured. Words are produced three at a
// time, so up to two extra words may be written. It returns the number of
// words written.
//
// ErrEmptyModel and ErrInvalidLength are returned before anything is
// written.
func (g *Generator) WriteStory(ctx context.Context, w io.Writer, model *Model, length int) (int, error) {
	s, err := g.newStory(model, length)
	if err != nil {
		return 0, err
	}

	var written int
	for !s.done() {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		seq, err := s.next(ctx)
		if err != nil {
			return written, err
		}
		if _, err := io.WriteString(w, seq.Text); err != nil {
			return written, fmt.Errorf("failed to write sequence: %w", err)
		}
		written += len(seq.Words)
		if seq.LineBreak {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return written, fmt.Errorf("failed to write line break: %w", err)
			}
		}
	}

	g.logger.InfoContext(ctx, "Story generated",
		slog.Int("target_length", length),
		slog.Int("words", written),
		slog.Int("distinct_sequences", len(s.used)),
	)
	return written, nil
}

// Generate is a convenience wrapper around WriteStory that returns the story
// as a string.
func (g *Generator) Generate(ctx context.Context, model *Model, length int) (string, error) {
	var builder strings.Builder
	if _, err := g.WriteStory(ctx, &builder, model, length); err != nil {
		return "", err
	}
	return builder.String(), nil
}
