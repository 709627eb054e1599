package store

import (
	"math"
	"testing"
	"time"

	"github.com/brickmind/brickmind/internal/catalog"
)

func TestBlobRoundTrip(t *testing.T) {
	in := []float32{0.5, -1.25, 3.75, 0}
	out := BlobToFloat32Slice(float32SliceToBlob(in))
	if len(out) != len(in) {
		t.Fatalf("Length mismatch: %d vs %d", len(out), len(in))
	}
	for i := range in {
		if in[i] != out[i] {
			t.Errorf("Index %d: %f != %f", i, in[i], out[i])
		}
	}
}

func TestCosineSimilarity(t *testing.T) {
	if got := cosineSimilarity([]float32{1, 0}, []float32{1, 0}); math.Abs(got-1) > 1e-9 {
		t.Errorf("Identical vectors: got %f", got)
	}
	if got := cosineSimilarity([]float32{1, 0}, []float32{0, 1}); math.Abs(got) > 1e-9 {
		t.Errorf("Orthogonal vectors: got %f", got)
	}
	if got := cosineSimilarity([]float32{1, 0}, []float32{1}); got != 0 {
		t.Errorf("Dimension mismatch should score 0, got %f", got)
	}
	if got := cosineSimilarity([]float32{0, 0}, []float32{0, 0}); got != 0 {
		t.Errorf("Zero vectors should score 0, got %f", got)
	}
}

func TestSearchVectorsBrute(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	sets := []struct {
		id   string
		name string
		vec  []float32
	}{
		{"75192-1", "Millennium Falcon", []float32{1, 0, 0}},
		{"10276-1", "Colosseum", []float32{0, 1, 0}},
		{"42115-1", "Lamborghini Sian", []float32{0.9, 0.1, 0}},
	}
	for _, c := range sets {
		s.UpsertSet(&catalog.Set{SetID: c.id, Name: c.name, Theme: "t", PieceCount: 1}, "test", now)
		if err := s.InsertEmbedding(c.id, c.vec, "test-model", now); err != nil {
			t.Fatalf("InsertEmbedding failed: %v", err)
		}
	}

	results, err := s.SearchVectorsBrute([]float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("SearchVectorsBrute failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Set.SetID != "75192-1" {
		t.Errorf("Expected exact match first, got %s", results[0].Set.SetID)
	}
	if results[1].Set.SetID != "42115-1" {
		t.Errorf("Expected near match second, got %s", results[1].Set.SetID)
	}
	if results[0].Score < results[1].Score {
		t.Error("Results not sorted by score descending")
	}
}

func TestNeedsEmbeddingAndClear(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	s.UpsertSet(testSet("1-1", "Alpha", "T", 1), "test", now)
	s.UpsertSet(testSet("2-1", "Beta", "T", 1), "test", now)

	need, err := s.SetsNeedingEmbedding()
	if err != nil {
		t.Fatalf("SetsNeedingEmbedding failed: %v", err)
	}
	if len(need) != 2 {
		t.Fatalf("Expected 2 sets needing embedding, got %d", len(need))
	}

	s.InsertEmbedding("1-1", []float32{1}, "m", now)
	need, _ = s.SetsNeedingEmbedding()
	if len(need) != 1 || need[0].SetID != "2-1" {
		t.Errorf("Expected only 2-1 to need embedding: %+v", need)
	}

	if err := s.ClearAllEmbeddings(); err != nil {
		t.Fatalf("ClearAllEmbeddings failed: %v", err)
	}
	if s.HasVectors() {
		t.Error("Vectors remain after clear")
	}
	n, _ := s.CountNeedingEmbedding()
	if n != 2 {
		t.Errorf("Expected 2 needing embedding after clear, got %d", n)
	}
}
