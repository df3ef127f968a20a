package archive

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

func testStory(text string, sources ...string) Story {
	return Story{
		CreatedAt:    time.Unix(1_700_000_000, 0),
		Seed:         1<<63 + 5,
		TargetLength: 6,
		WordCount:    6,
		ModelWords:   3,
		ModelTriples: 4,
		Text:         text,
		Sources:      sources,
	}
}

func TestSetupSchemaIdempotent(t *testing.T) {
	db, _ := setupTestDB(t)
	if err := SetupSchema(db); err != nil {
		t.Errorf("second SetupSchema() failed: %v", err)
	}
}

func TestSaveAndGetStory(t *testing.T) {
	_, s := setupTestDB(t)
	ctx := context.Background()

	want := testStory("the dog ran the dog jumped ", "vall.txt", "houn.txt")
	id, err := s.SaveStory(ctx, want)
	if err != nil {
		t.Fatalf("SaveStory() failed: %v", err)
	}

	got, err := s.GetStory(ctx, id)
	if err != nil {
		t.Fatalf("GetStory() failed: %v", err)
	}
	want.Id = id
	want.Sources = []string{"houn.txt", "vall.txt"} // sorted on read
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
	got.CreatedAt = want.CreatedAt
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetStory() = %+v, want %+v", got, want)
	}

	if _, err = s.GetStory(ctx, id+100); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows for missing story, got %v", err)
	}
}

func TestSaveStoryDefaultsCreatedAt(t *testing.T) {
	_, s := setupTestDB(t)
	ctx := context.Background()

	story := testStory("a b c ")
	story.CreatedAt = time.Time{}
	before := time.Now().Add(-time.Second)
	id, err := s.SaveStory(ctx, story)
	if err != nil {
		t.Fatalf("SaveStory() failed: %v", err)
	}
	got, _ := s.GetStory(ctx, id)
	if got.CreatedAt.Before(before) {
		t.Errorf("CreatedAt = %v, expected it to default to now", got.CreatedAt)
	}
}

func TestListAndRemoveStories(t *testing.T) {
	db, s := setupTestDB(t)
	ctx := context.Background()

	id1, _ := s.SaveStory(ctx, testStory("first ", "a.txt"))
	id2, _ := s.SaveStory(ctx, testStory("second ", "b.txt"))

	stories, err := s.ListStories(ctx)
	if err != nil {
		t.Fatalf("ListStories() failed: %v", err)
	}
	if len(stories) != 2 || stories[0].Id != id1 || stories[1].Id != id2 {
		t.Fatalf("ListStories() = %+v, want stories %d and %d in order", stories, id1, id2)
	}
	if !reflect.DeepEqual(stories[1].Sources, []string{"b.txt"}) {
		t.Errorf("second story sources = %v", stories[1].Sources)
	}

	if err := s.RemoveStory(ctx, id1); err != nil {
		t.Fatalf("RemoveStory() failed: %v", err)
	}
	if _, err := s.GetStory(ctx, id1); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected removed story to be gone, got %v", err)
	}
	var count int
	_ = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM story_sources WHERE story_id = ?", id1).Scan(&count)
	if count != 0 {
		t.Errorf("expected 0 sources for removed story, found %d", count)
	}
	if _, err := s.GetStory(ctx, id2); err != nil {
		t.Errorf("kept story should still exist: %v", err)
	}

	if err := s.RemoveStory(ctx, 9999); err != nil {
		t.Errorf("removing a missing story should not fail: %v", err)
	}
}

func TestGetStats(t *testing.T) {
	_, s := setupTestDB(t)
	ctx := context.Background()

	stats, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() on empty archive failed: %v", err)
	}
	if stats != (Stats{}) {
		t.Errorf("empty archive stats = %+v", stats)
	}

	_, _ = s.SaveStory(ctx, testStory("a b c d e f ", "houn.txt", "sign.txt"))
	_, _ = s.SaveStory(ctx, testStory("g h i j k l ", "houn.txt"))

	stats, err = s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if want := (Stats{Stories: 2, TotalWords: 12, Sources: 2}); stats != want {
		t.Errorf("GetStats() = %+v, want %+v", stats, want)
	}
}

func TestExportStories(t *testing.T) {
	_, s := setupTestDB(t)
	ctx := context.Background()

	var buf bytes.Buffer
	if err := s.ExportStories(ctx, &buf); err != nil {
		t.Fatalf("ExportStories() on empty archive failed: %v", err)
	}
	if got := bytes.TrimSpace(buf.Bytes()); string(got) != "[]" {
		t.Errorf("empty export = %q, want []", got)
	}

	id, _ := s.SaveStory(ctx, testStory("one fish two fish ", "stud.txt"))
	buf.Reset()
	if err := s.ExportStories(ctx, &buf); err != nil {
		t.Fatalf("ExportStories() failed: %v", err)
	}

	var exported []Story
	if err := json.NewDecoder(&buf).Decode(&exported); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(exported) != 1 || exported[0].Id != id || exported[0].Text != "one fish two fish " {
		t.Errorf("unexpected export: %+v", exported)
	}
}
