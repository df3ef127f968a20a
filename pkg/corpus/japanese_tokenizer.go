package corpus

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// japaneseTerminators end a sentence in Japanese text.
const japaneseTerminators = "。！？.!?"

// JapaneseTokenizer segments text written without spaces between words
// using the kagome morphological analyzer and the IPA dictionary. Each
// surface form becomes a word; punctuation is dropped except for sentence
// terminators.
type JapaneseTokenizer struct {
	t *tokenizer.Tokenizer
}

// NewJapaneseTokenizer loads the IPA dictionary and returns a tokenizer.
func NewJapaneseTokenizer() (*JapaneseTokenizer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &JapaneseTokenizer{t: t}, nil
}

// NewStream returns the stream processor.
func (j *JapaneseTokenizer) NewStream(r io.Reader) StreamTokenizer {
	return &japaneseStream{
		scanner: newScanner(r),
		t:       j.t,
	}
}

type japaneseStream struct {
	scanner *bufio.Scanner
	t       *tokenizer.Tokenizer
	buffer  []Token
}

func (s *japaneseStream) Next() (*Token, error) {
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

func (s *japaneseStream) fill(line string) {
	for _, token := range s.t.Tokenize(line) {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		surface := strings.TrimSpace(token.Surface)
		if surface == "" {
			continue
		}
		if strings.ContainsAny(surface, japaneseTerminators) && isPunctuation(surface) {
			s.buffer = append(s.buffer, Token{EOS: true})
			continue
		}
		if isPunctuation(surface) {
			continue
		}
		s.buffer = append(s.buffer, Token{Text: strings.ToLower(surface)})
	}
}

func isPunctuation(s string) bool {
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}
