package corpus

import (
	"bufio"
	"fmt"
	"io"
)

// maxLineLength bounds a single input line; extracted HTML text in
// particular can put a whole article on one line.
const maxLineLength = 1 << 20

// Token is a single word of input text, or a marker for the end of a
// sentence.
type Token struct {
	Text string
	EOS  bool
}

// Tokenizer splits input text into tokens. Implementations decide what a
// word is and where sentences end; the Trainer only sees the token stream.
type Tokenizer interface {
	// NewStream returns a stateful StreamTokenizer for processing an io.Reader.
	NewStream(io.Reader) StreamTokenizer
}

// StreamTokenizer is a stateful tokenizer that processes a stream of data,
// returning one token at a time.
type StreamTokenizer interface {
	// Next returns the next token from the stream. It returns io.EOF as the
	// error when the stream is fully consumed.
	Next() (*Token, error)
}

const (
	// TokenizerDefault names the DefaultTokenizer in configuration.
	TokenizerDefault = "default"
	// TokenizerJapanese names the JapaneseTokenizer in configuration.
	TokenizerJapanese = "japanese"
)

// NewTokenizer returns the tokenizer registered under name. An empty name
// selects the DefaultTokenizer.
func NewTokenizer(name string) (Tokenizer, error) {
	switch name {
	case "", TokenizerDefault:
		return NewDefaultTokenizer(), nil
	case TokenizerJapanese:
		return NewJapaneseTokenizer()
	default:
		return nil, fmt.Errorf("unknown tokenizer %q", name)
	}
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return scanner
}
