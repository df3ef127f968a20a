package corpus

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultTokenizer splits text into lowercase words separated by whitespace.
// ASCII punctuation is removed outright, so "don't" becomes "dont", and the
// sentence terminators end a sentence wherever they appear. Its behavior can
// be customized with functional options.
type DefaultTokenizer struct {
	terminators string
	lowercase   bool
}

// Option is a function that configures a DefaultTokenizer.
type Option func(*DefaultTokenizer)

// WithTerminators sets the characters that end a sentence.
// Default: "."
func WithTerminators(chars string) Option {
	return func(t *DefaultTokenizer) {
		t.terminators = chars
	}
}

// WithLowercase sets whether words are lowercased.
// Default: true
func WithLowercase(lower bool) Option {
	return func(t *DefaultTokenizer) {
		t.lowercase = lower
	}
}

// NewDefaultTokenizer creates a new tokenizer with default settings, which can
// be overridden by providing one or more Option functions.
func NewDefaultTokenizer(opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{
		terminators: ".",
		lowercase:   true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewStream returns the stream processor.
func (t *DefaultTokenizer) NewStream(r io.Reader) StreamTokenizer {
	return &DefaultStreamTokenizer{
		scanner:   newScanner(r),
		tokenizer: t,
	}
}

func (t *DefaultTokenizer) isTerminator(r rune) bool {
	return strings.ContainsRune(t.terminators, r)
}

// strip drops ASCII punctuation and symbols other than the terminators.
func (t *DefaultTokenizer) strip(r rune) rune {
	if r < utf8.RuneSelf && (unicode.IsPunct(r) || unicode.IsSymbol(r)) && !t.isTerminator(r) {
		return -1
	}
	return r
}

// DefaultStreamTokenizer is the StreamTokenizer of a DefaultTokenizer. It
// reads its input one line at a time; sentences may span lines.
type DefaultStreamTokenizer struct {
	scanner   *bufio.Scanner
	tokenizer *DefaultTokenizer
	buffer    []Token
}

// Next returns the next token from the stream. It returns a Token and a nil
// error on success. When the stream is exhausted, it returns a nil Token and
// io.EOF. Any other error indicates a problem reading from the underlying
// stream.
func (s *DefaultStreamTokenizer) Next() (*Token, error) {
	for len(s.buffer) == 0 {
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		s.fill(s.scanner.Text())
	}

	token := s.buffer[0]
	s.buffer = s.buffer[1:]
	return &token, nil
}

func (s *DefaultStreamTokenizer) fill(line string) {
	t := s.tokenizer
	if t.lowercase {
		line = strings.ToLower(line)
	}
	line = strings.Map(t.strip, line)

	for _, field := range strings.Fields(line) {
		start := 0
		for i, r := range field {
			if !t.isTerminator(r) {
				continue
			}
			if i > start {
				s.buffer = append(s.buffer, Token{Text: field[start:i]})
			}
			s.buffer = append(s.buffer, Token{EOS: true})
			start = i + utf8.RuneLen(r)
		}
		if start < len(field) {
			s.buffer = append(s.buffer, Token{Text: field[start:]})
		}
	}
}
