package corpus

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/CTAG07/Trigram/pkg/trigram"
)

// Format is the encoding of a corpus document.
type Format string

const (
	// FormatText is plain text.
	FormatText Format = "text"
	// FormatHTML is an HTML page whose article text is extracted first.
	FormatHTML Format = "html"
)

// Source describes one corpus document.
type Source struct {
	Path string `json:"path"`
	// Format defaults to FormatText.
	Format Format `json:"format,omitempty"`
	// Header, when set, is a title block; everything up to and including it
	// is skipped.
	Header string `json:"header,omitempty"`
	// Tokenizer names the tokenizer for this document, see NewTokenizer.
	Tokenizer string `json:"tokenizer,omitempty"`
}

// TrainSource reads the document described by src, reduces it to text
// according to its format and header, and trains model on it.
func (t *Trainer) TrainSource(ctx context.Context, model *trigram.Model, src Source) (TrainStats, error) {
	raw, err := os.ReadFile(src.Path)
	if err != nil {
		return TrainStats{}, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var text string
	switch src.Format {
	case "", FormatText:
		text = string(raw)
	case FormatHTML:
		if text, err = ExtractHTML(bytes.NewReader(raw), &url.URL{Scheme: "file", Path: src.Path}); err != nil {
			return TrainStats{}, fmt.Errorf("%s: %w", src.Path, err)
		}
	default:
		return TrainStats{}, fmt.Errorf("%s: unknown format %q", src.Path, src.Format)
	}

	if src.Header != "" {
		var found bool
		if text, found = TrimHeader(text, src.Header); !found {
			t.logger.WarnContext(ctx, "Header not found, training on whole document",
				slog.String("path", src.Path),
			)
		}
	}

	stats, err := t.Train(ctx, model, strings.NewReader(text))
	if err != nil {
		return stats, fmt.Errorf("%s: %w", src.Path, err)
	}

	t.logger.InfoContext(ctx, "Corpus document consumed",
		slog.String("path", src.Path),
		slog.String("format", string(src.Format)),
		slog.Int("sentences", stats.Sentences),
		slog.Int("triples", stats.Triples),
	)
	return stats, nil
}
