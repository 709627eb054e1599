package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/brickmind/brickmind/internal/catalog"
)

func TestUpsertAndGetSet(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	price := 849.99
	year := 2017
	set := &catalog.Set{
		SetID:       "75192-1",
		Name:        "Millennium Falcon",
		Theme:       "Star Wars",
		PieceCount:  7541,
		Price:       &price,
		ReleaseYear: &year,
		Description: "Ultimate Collector Series Millennium Falcon.",
	}

	created, err := s.UpsertSet(set, "brickset", now)
	if err != nil {
		t.Fatalf("UpsertSet failed: %v", err)
	}
	if !created {
		t.Error("Expected created=true on first upsert")
	}

	got, err := s.GetSet("75192-1")
	if err != nil {
		t.Fatalf("GetSet failed: %v", err)
	}
	if got.Name != set.Name || got.Theme != set.Theme || got.PieceCount != set.PieceCount {
		t.Errorf("Round-trip mismatch: %+v", got)
	}
	if got.Price == nil || *got.Price != price {
		t.Errorf("Price mismatch: %v", got.Price)
	}
	if got.ReleaseYear == nil || *got.ReleaseYear != year {
		t.Errorf("Year mismatch: %v", got.ReleaseYear)
	}

	// Second upsert updates in place.
	set.PieceCount = 7500
	created, err = s.UpsertSet(set, "brickset", now.Add(time.Hour))
	if err != nil {
		t.Fatalf("UpsertSet (update) failed: %v", err)
	}
	if created {
		t.Error("Expected created=false on update")
	}
	got, _ = s.GetSet("75192-1")
	if got.PieceCount != 7500 {
		t.Errorf("Update not applied: %d", got.PieceCount)
	}

	var cnt int
	s.DB.QueryRow(`SELECT COUNT(*) FROM lego_sets`).Scan(&cnt)
	if cnt != 1 {
		t.Errorf("Expected 1 row after upsert, got %d", cnt)
	}

	if _, err := s.GetSet("99999-1"); err != sql.ErrNoRows {
		t.Errorf("Expected sql.ErrNoRows for missing set, got %v", err)
	}
}

func TestUpsertRejectsInvalid(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.UpsertSet(&catalog.Set{SetID: "1-1"}, "test", time.Now()); err == nil {
		t.Error("Expected validation error for set without name")
	}
}

func TestUpsertInvalidatesStaleEmbedding(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	set := testSet("10294-1", "Titanic", "Creator Expert", 9090)
	s.UpsertSet(set, "brickset", now)
	s.InsertEmbedding("10294-1", []float32{0.1, 0.2}, "test-model", now)

	// Same text: vector survives.
	s.UpsertSet(set, "brickset", now)
	if !s.HasVectors() {
		t.Fatal("Vector dropped although embed text unchanged")
	}

	// Changed description: vector is dropped for re-embedding.
	set.Description = "The largest LEGO Titanic model."
	s.UpsertSet(set, "brickset", now)
	if s.HasVectors() {
		t.Error("Stale vector kept after embed text changed")
	}
	n, _ := s.CountNeedingEmbedding()
	if n != 1 {
		t.Errorf("Expected 1 set needing embedding, got %d", n)
	}
}

func TestSearchByName(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	s.UpsertSet(testSet("75192-1", "Millennium Falcon", "Star Wars", 7541), "brickset", now)
	s.UpsertSet(testSet("75375-1", "Millennium Falcon Midi", "Star Wars", 921), "brickset", now)
	s.UpsertSet(testSet("10276-1", "Colosseum", "Creator Expert", 9036), "brickset", now)

	results, err := s.SearchByName("falcon", 10)
	if err != nil {
		t.Fatalf("SearchByName failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 results, got %d", len(results))
	}

	results, _ = s.SearchByName("falcon", 1)
	if len(results) != 1 {
		t.Errorf("Limit not applied: got %d", len(results))
	}
}

func TestListSets(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	y1, y2 := 2017, 2023
	p1, p2 := 849.99, 84.99
	s.UpsertSet(&catalog.Set{SetID: "75192-1", Name: "Millennium Falcon", Theme: "Star Wars", PieceCount: 7541, Price: &p1, ReleaseYear: &y1}, "t", now)
	s.UpsertSet(&catalog.Set{SetID: "75375-1", Name: "Millennium Falcon Midi", Theme: "Star Wars", PieceCount: 921, Price: &p2, ReleaseYear: &y2}, "t", now)
	s.UpsertSet(&catalog.Set{SetID: "10276-1", Name: "Colosseum", Theme: "Creator Expert", PieceCount: 9036}, "t", now)

	byTheme, err := s.ListSets(ListFilter{Theme: "star wars"})
	if err != nil {
		t.Fatalf("ListSets failed: %v", err)
	}
	if len(byTheme) != 2 {
		t.Errorf("Theme filter: expected 2, got %d", len(byTheme))
	}

	byYear, _ := s.ListSets(ListFilter{Year: 2023})
	if len(byYear) != 1 || byYear[0].SetID != "75375-1" {
		t.Errorf("Year filter failed: %+v", byYear)
	}

	biggest, _ := s.ListSets(ListFilter{OrderBy: "pieces_desc", Limit: 1})
	if len(biggest) != 1 || biggest[0].SetID != "10276-1" {
		t.Errorf("pieces_desc order failed: %+v", biggest)
	}

	cheapest, _ := s.ListSets(ListFilter{OrderBy: "price", Limit: 1})
	if len(cheapest) != 1 || cheapest[0].SetID != "75375-1" {
		t.Errorf("price order failed: %+v", cheapest)
	}

	if _, err := s.ListSets(ListFilter{OrderBy: "bogus"}); err == nil {
		t.Error("Expected error for unknown order")
	}
}

func TestThemesAndDelete(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	s.UpsertSet(testSet("60380-1", "City Centre", "City", 2010), "t", now)
	s.UpsertSet(testSet("60419-1", "Police Prison Island", "City", 980), "t", now)
	s.UpsertSet(testSet("71799-1", "Ninjago City Markets", "Ninjago", 6163), "t", now)
	s.InsertEmbedding("60380-1", []float32{1}, "m", now)

	themes, err := s.Themes()
	if err != nil {
		t.Fatalf("Themes failed: %v", err)
	}
	if len(themes) != 2 || themes[0].Theme != "City" || themes[0].Count != 2 {
		t.Errorf("Unexpected themes: %+v", themes)
	}

	if err := s.DeleteSet("60380-1"); err != nil {
		t.Fatalf("DeleteSet failed: %v", err)
	}
	if _, err := s.GetSet("60380-1"); err != sql.ErrNoRows {
		t.Errorf("Set still present after delete: %v", err)
	}
	if s.HasVectors() {
		t.Error("Vector still present after set delete")
	}
}
