package archive

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
)

// SetupSchema initializes the archive tables in the provided database. It is
// idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {

	const (
		schemaStories = `
CREATE TABLE IF NOT EXISTS stories (
    story_id INTEGER PRIMARY KEY,
    created_at INTEGER NOT NULL,
    seed INTEGER NOT NULL,
    target_length INTEGER NOT NULL,
    word_count INTEGER NOT NULL,
    model_words INTEGER NOT NULL DEFAULT 0,
    model_triples INTEGER NOT NULL DEFAULT 0,
    story_text TEXT NOT NULL
);
`
		schemaSources = `
CREATE TABLE IF NOT EXISTS story_sources (
    story_id INTEGER NOT NULL,
    source_path TEXT NOT NULL,
    PRIMARY KEY (story_id, source_path)
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaStories); err != nil {
		return fmt.Errorf("could not create stories schema: %w", err)
	}

	if _, err = tx.Exec(schemaSources); err != nil {
		return fmt.Errorf("could not create sources schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

// Store is the entry point for reading and writing the story archive. It
// holds the database connection and prepared SQL statements.
type Store struct {
	db              *sql.DB
	stmtInsertStory *sql.Stmt
	stmtInsertSrc   *sql.Stmt
	stmtGetStory    *sql.Stmt
	stmtGetSources  *sql.Stmt
	stmtListStories *sql.Stmt
	stmtStoryCount  *sql.Stmt
	stmtSourceCount *sql.Stmt
	logger          *slog.Logger
}

// NewStore creates and returns a new Store. SetupSchema must have been called
// on db. It pre-compiles all necessary SQL statements, returning an error if
// any preparation fails.
func NewStore(db *sql.DB) (*Store, error) {
	stmtInsertStory, err := db.Prepare(`INSERT INTO stories (created_at, seed, target_length, word_count, model_words, model_triples, story_text) VALUES (?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return nil, err
	}

	stmtInsertSrc, err := db.Prepare(`INSERT OR IGNORE INTO story_sources (story_id, source_path) VALUES (?, ?);`)
	if err != nil {
		return nil, err
	}

	stmtGetStory, err := db.Prepare(`SELECT story_id, created_at, seed, target_length, word_count, model_words, model_triples, story_text FROM stories WHERE story_id = ?;`)
	if err != nil {
		return nil, err
	}

	stmtGetSources, err := db.Prepare(`SELECT source_path FROM story_sources WHERE story_id = ? ORDER BY source_path;`)
	if err != nil {
		return nil, err
	}

	stmtListStories, err := db.Prepare(`SELECT story_id, created_at, seed, target_length, word_count, model_words, model_triples, story_text FROM stories ORDER BY story_id;`)
	if err != nil {
		return nil, err
	}

	stmtStoryCount, err := db.Prepare(`SELECT COUNT(*), coalesce(SUM(word_count), 0) FROM stories;`)
	if err != nil {
		return nil, err
	}

	stmtSourceCount, err := db.Prepare(`SELECT COUNT(DISTINCT source_path) FROM story_sources;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:              db,
		stmtInsertStory: stmtInsertStory,
		stmtInsertSrc:   stmtInsertSrc,
		stmtGetStory:    stmtGetStory,
		stmtGetSources:  stmtGetSources,
		stmtListStories: stmtListStories,
		stmtStoryCount:  stmtStoryCount,
		stmtSourceCount: stmtSourceCount,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases all prepared SQL statements held by the Store.
func (s *Store) Close() {
	_ = s.stmtInsertStory.Close()
	_ = s.stmtInsertSrc.Close()
	_ = s.stmtGetStory.Close()
	_ = s.stmtGetSources.Close()
	_ = s.stmtListStories.Close()
	_ = s.stmtStoryCount.Close()
	_ = s.stmtSourceCount.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}
