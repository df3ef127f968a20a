package trigram

import (
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// recordText records every sliding-window triple of each "."-separated
// sentence in text, lowercased and split on whitespace.
func recordText(m *Model, text string) {
	for _, sentence := range strings.Split(strings.ToLower(text), ".") {
		words := strings.Fields(sentence)
		for i := 0; i+2 < len(words); i++ {
			m.Record(words[i], words[i+1], words[i+2])
		}
	}
}

// setupTestModel returns a model trained on a short fixed corpus.
func setupTestModel(t *testing.T) *Model {
	t.Helper()
	m := NewModel()
	recordText(m, "one fish two fish. red fish blue fish. one fish two fish red fish. blue fish swim far away.")
	if m.Len() == 0 {
		t.Fatal("setup: model has no words")
	}
	return m
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = "this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. "
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
