package trigram

// Stats holds aggregate counts for a trained Model.
type Stats struct {
	Words   int // The number of distinct first words
	Pairs   int // The number of distinct (first, second) pairs
	Triples int // The number of distinct (first, second, third) triples
	Records int // The number of Record calls, i.e. the sum of top-level counts
}

// Stats walks the whole trie and returns its aggregate counts.
func (m *Model) Stats() Stats {
	var s Stats
	for _, first := range m.root.next {
		s.Words++
		s.Records += first.Count
		for _, second := range first.next {
			s.Pairs++
			s.Triples += second.Len()
		}
	}
	return s
}
