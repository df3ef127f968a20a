package trigram

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var (
	// ErrUnknownContext is returned by probability queries whose context
	// word or word pair was never recorded.
	ErrUnknownContext = errors.New("trigram: unknown context")
	// ErrEmptyModel is returned when an operation needs at least one recorded
	// triple and the model has none.
	ErrEmptyModel = errors.New("trigram: model is empty")
)

// Model is a trigram model: a three level trie mapping a first word to the
// second words seen after it, and each of those to the third words seen after
// the pair. Every node counts how often it was observed in its position.
//
// The zero value is an empty model ready for use. A Model is not safe for
// concurrent use; record everything first, then hand it to a Generator.
type Model struct {
	root WordNode
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{}
}

// Record counts one occurrence of the triple (first, second, third). Each of
// the three levels is incremented if already known and inserted with a count
// of one otherwise.
func (m *Model) Record(first, second, third string) {
	m.root.observe(first).observe(second).observe(third)
}

// Contains reports whether word was ever recorded as the first word of a
// triple.
func (m *Model) Contains(word string) bool {
	_, ok := m.root.next[word]
	return ok
}

// Len returns the number of distinct first words.
func (m *Model) Len() int {
	return m.root.Len()
}

// Words returns the distinct first words in the order they were first
// recorded.
func (m *Model) Words() []string {
	return m.root.Continuations()
}

// Word returns the top-level node for first.
func (m *Model) Word(first string) (*WordNode, bool) {
	return m.root.Next(first)
}

// Pair returns the node for second as observed after first.
func (m *Model) Pair(first, second string) (*WordNode, bool) {
	node, ok := m.root.Next(first)
	if !ok {
		return nil, false
	}
	return node.Next(second)
}

// RandomWord returns a top-level word chosen uniformly at random.
func (m *Model) RandomWord(r *rand.Rand) (string, error) {
	if m.Len() == 0 {
		return "", ErrEmptyModel
	}
	return m.root.order[r.IntN(len(m.root.order))], nil
}

// PairProbability returns P(candidate | given), the share of all words
// observed after given that were candidate. It is zero when candidate never
// followed given, and ErrUnknownContext when given was never a first word.
func (m *Model) PairProbability(given, candidate string) (float64, error) {
	node, ok := m.Word(given)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownContext, given)
	}
	return node.probability(candidate), nil
}

// TripleProbability returns P(candidate | given1, given2). It is zero when
// candidate never followed the pair, and ErrUnknownContext when the pair was
// never recorded.
func (m *Model) TripleProbability(given1, given2, candidate string) (float64, error) {
	node, ok := m.Pair(given1, given2)
	if !ok {
		return 0, fmt.Errorf("%w: %q %q", ErrUnknownContext, given1, given2)
	}
	return node.probability(candidate), nil
}

// BestPairContinuation returns the most probable word to follow given. When
// several words are equally probable the one recorded first wins. It reports
// false if given is unknown or has no continuations.
func (m *Model) BestPairContinuation(given string) (string, bool) {
	node, ok := m.Word(given)
	if !ok {
		return "", false
	}
	return node.best()
}

// BestTripleContinuation returns the most probable word to follow the pair
// (given1, given2), with the same tie-break as BestPairContinuation. It
// reports false if the pair is unknown or has no continuations.
func (m *Model) BestTripleContinuation(given1, given2 string) (string, bool) {
	node, ok := m.Pair(given1, given2)
	if !ok {
		return "", false
	}
	return node.best()
}
