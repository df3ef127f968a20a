package trigram

import (
	"context"
	"log/slog"
)

// GenerateStream starts a story of at least length words and returns a
// read-only channel of its sequences, in emission order. The channel is
// closed once the story is complete, the context is cancelled, or the model
// runs out of continuations (which is logged).
//
// ErrEmptyModel and ErrInvalidLength are returned up front, before any
// sequence is produced. The stream cannot be restarted; call GenerateStream
// again for a new story.
func (g *Generator) GenerateStream(ctx context.Context, model *Model, length int) (<-chan Sequence, error) {
	s, err := g.newStory(model, length)
	if err != nil {
		return nil, err
	}

	seqChan := make(chan Sequence)

	go func() {
		defer close(seqChan)

		for !s.done() {
			select {
			case <-ctx.Done():
				g.logger.DebugContext(ctx, "Generation stream cancelled by context")
				return
			default:
				// continue
			}

			seq, err := s.next(ctx)
			if err != nil {
				g.logger.ErrorContext(ctx, "failed to generate sequence for stream",
					slog.Int("word_count", s.wordCount),
					slog.Any("error", err),
				)
				return
			}

			select {
			case <-ctx.Done():
				return
			case seqChan <- seq:
			}
		}
	}()

	return seqChan, nil
}
