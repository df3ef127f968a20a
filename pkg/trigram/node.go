package trigram

// WordNode is a single word observed at one position of the trie: a first
// word, a second word following some first word, or a third word following
// some first and second word pair.
type WordNode struct {
	Value string
	Count int

	next  map[string]*WordNode
	order []string // keys of next, in insertion order
}

func newWordNode(value string) *WordNode {
	return &WordNode{Value: value, Count: 1}
}

// String returns the word itself.
func (n *WordNode) String() string {
	return n.Value
}

// Next returns the continuation node for word, if it was ever observed
// directly after this one.
func (n *WordNode) Next(word string) (*WordNode, bool) {
	child, ok := n.next[word]
	return child, ok
}

// Continuations returns the words observed after this node, in the order
// they were first recorded.
func (n *WordNode) Continuations() []string {
	out := make([]string, len(n.order))
	copy(out, n.order)
	return out
}

// Len is the number of distinct continuations.
func (n *WordNode) Len() int {
	return len(n.order)
}

// TotalContinuations is the sum of the counts of all immediate continuations.
// It is the denominator of every conditional probability taken in this
// node's context.
func (n *WordNode) TotalContinuations() int {
	var total int
	for _, child := range n.next {
		total += child.Count
	}
	return total
}

// probability returns P(word | n). It is zero when word never followed n.
func (n *WordNode) probability(word string) float64 {
	child, ok := n.next[word]
	if !ok {
		return 0
	}
	return float64(child.Count) / float64(n.TotalContinuations())
}

// best folds over the continuations in insertion order and keeps a candidate
// only if it is strictly more probable than the current best, so ties go to
// the word recorded first. It reports false when no continuation exists.
func (n *WordNode) best() (string, bool) {
	total := n.TotalContinuations()
	if total == 0 {
		return "", false
	}
	var (
		bestWord string
		bestProb float64
		found    bool
	)
	for _, word := range n.order {
		p := float64(n.next[word].Count) / float64(total)
		if p > bestProb {
			bestWord, bestProb, found = word, p, true
		}
	}
	return bestWord, found
}

// observe increments the count of word as a continuation of n, inserting it
// with a count of one the first time, and returns its node.
func (n *WordNode) observe(word string) *WordNode {
	if child, ok := n.next[word]; ok {
		child.Count++
		return child
	}
	if n.next == nil {
		n.next = make(map[string]*WordNode)
	}
	child := newWordNode(word)
	n.next[word] = child
	n.order = append(n.order, word)
	return child
}
