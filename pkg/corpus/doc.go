// Package corpus turns raw documents into the word triples a trigram.Model
// is trained on: it trims title blocks, extracts article text from HTML,
// splits text into sentences and words, and records every consecutive triple
// of each sentence.
package corpus
