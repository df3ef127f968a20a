package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Story is one archived generation run.
type Story struct {
	Id           int64     `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Seed         uint64    `json:"seed"`
	TargetLength int       `json:"target_length"`
	WordCount    int       `json:"word_count"`
	ModelWords   int       `json:"model_words"`   // distinct first words in the model
	ModelTriples int       `json:"model_triples"` // distinct triples in the model
	Text         string    `json:"text"`
	Sources      []string  `json:"sources"` // corpus documents the model was trained on
}

// SaveStory archives a story and its sources in a single transaction and
// returns the new story's ID. A zero CreatedAt is replaced by the current
// time.
func (s *Store) SaveStory(ctx context.Context, story Story) (int64, error) {
	if story.CreatedAt.IsZero() {
		story.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	res, err := tx.StmtContext(ctx, s.stmtInsertStory).ExecContext(ctx,
		story.CreatedAt.Unix(),
		int64(story.Seed),
		story.TargetLength,
		story.WordCount,
		story.ModelWords,
		story.ModelTriples,
		story.Text,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert story: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read story id: %w", err)
	}

	stmtInsertSrc := tx.StmtContext(ctx, s.stmtInsertSrc)
	for _, src := range story.Sources {
		if _, err = stmtInsertSrc.ExecContext(ctx, id, src); err != nil {
			return 0, fmt.Errorf("failed to insert source '%s' for story %d: %w", src, id, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("could not commit story: %w", err)
	}

	s.logger.InfoContext(ctx, "Story archived",
		slog.Int64("story_id", id),
		slog.Int("word_count", story.WordCount),
		slog.Int("sources", len(story.Sources)),
	)
	return id, nil
}

// GetStory retrieves a single story by ID. It returns sql.ErrNoRows if no
// such story exists.
func (s *Store) GetStory(ctx context.Context, id int64) (Story, error) {
	story, err := scanStory(s.stmtGetStory.QueryRowContext(ctx, id))
	if err != nil {
		return Story{}, err
	}
	if story.Sources, err = s.getSources(ctx, id); err != nil {
		return Story{}, err
	}
	return story, nil
}

// ListStories returns every archived story, oldest first.
func (s *Store) ListStories(ctx context.Context) ([]Story, error) {
	rows, err := s.stmtListStories.QueryContext(ctx)
	if err != nil {
		return nil, err
	}

	var stories []Story
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		stories = append(stories, story)
	}
	_ = rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}

	for i := range stories {
		if stories[i].Sources, err = s.getSources(ctx, stories[i].Id); err != nil {
			return nil, err
		}
	}
	return stories, nil
}

// RemoveStory deletes a story and its source list. The operation is
// performed within a transaction. Removing a story that does not exist is
// not an error.
func (s *Store) RemoveStory(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.ExecContext(ctx, "DELETE FROM story_sources WHERE story_id = ?", id); err != nil {
		return fmt.Errorf("failed to remove sources for story %d: %w", id, err)
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM stories WHERE story_id = ?", id); err != nil {
		return fmt.Errorf("failed to remove story %d: %w", id, err)
	}

	s.logger.InfoContext(ctx, "Story removed", slog.Int64("story_id", id))

	return tx.Commit()
}

// ExportStories writes every archived story to w as indented JSON.
func (s *Store) ExportStories(ctx context.Context, w io.Writer) error {
	stories, err := s.ListStories(ctx)
	if err != nil {
		return fmt.Errorf("could not list stories for export: %w", err)
	}
	if stories == nil {
		stories = []Story{}
	}

	s.logger.InfoContext(ctx, "Stories exported", slog.Int("stories_exported", len(stories)))

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(stories)
}

func (s *Store) getSources(ctx context.Context, id int64) ([]string, error) {
	rows, err := s.stmtGetSources.QueryContext(ctx, id)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var sources []string
	for rows.Next() {
		var src string
		if err = rows.Scan(&src); err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStory(row scanner) (Story, error) {
	var (
		story     Story
		createdAt int64
		seed      int64
	)
	err := row.Scan(&story.Id, &createdAt, &seed, &story.TargetLength, &story.WordCount,
		&story.ModelWords, &story.ModelTriples, &story.Text)
	if err != nil {
		return Story{}, err
	}
	story.CreatedAt = time.Unix(createdAt, 0)
	story.Seed = uint64(seed)
	return story, nil
}
