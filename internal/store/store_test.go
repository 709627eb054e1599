package store

import (
	"os"
	"testing"
	"time"

	"github.com/brickmind/brickmind/internal/catalog"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "brickmind-test-*.sqlite")
	if err != nil {
		t.Fatal(err)
	}
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	s, err := NewStore(tmpFile.Name())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testSet(id, name, theme string, pieces int) *catalog.Set {
	return &catalog.Set{SetID: id, Name: name, Theme: theme, PieceCount: pieces}
}

func TestNewStore(t *testing.T) {
	s := newTestStore(t)

	tables := []string{"lego_sets", "answer_cache", "set_vectors", "set_embeddings", "lego_sets_fts"}
	for _, table := range tables {
		var name string
		err := s.DB.QueryRow("SELECT name FROM sqlite_master WHERE name = ?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}
}

func TestGetStatus(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	s.UpsertSet(testSet("75192-1", "Millennium Falcon", "Star Wars", 7541), "brickset", now)
	s.UpsertSet(testSet("75375-1", "Millennium Falcon Midi", "Star Wars", 921), "brickset", now)
	s.UpsertSet(testSet("10276-1", "Colosseum", "Creator Expert", 9036), "brickset", now)
	s.InsertEmbedding("75192-1", []float32{1, 0}, "test-model", now)

	st, err := s.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus failed: %v", err)
	}
	if st.SetCount != 3 {
		t.Errorf("Expected 3 sets, got %d", st.SetCount)
	}
	if st.VectorCount != 1 {
		t.Errorf("Expected 1 vector, got %d", st.VectorCount)
	}
	if st.NeedsEmbedding != 2 {
		t.Errorf("Expected 2 needing embedding, got %d", st.NeedsEmbedding)
	}
	if len(st.Themes) != 2 {
		t.Fatalf("Expected 2 themes, got %d", len(st.Themes))
	}
	if st.Themes[0].Name != "Star Wars" || st.Themes[0].SetCount != 2 {
		t.Errorf("Expected Star Wars with 2 sets first, got %+v", st.Themes[0])
	}
}
