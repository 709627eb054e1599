package queryproc

import (
	"testing"

	"github.com/brickmind/brickmind/internal/catalog"
)

func fptr(f float64) *float64 { return &f }
func iptr(i int) *int         { return &i }

func TestScore(t *testing.T) {
	falcon := catalog.Set{
		SetID: "75192-1", Name: "Millennium Falcon", Theme: "Star Wars",
		PieceCount: 7541, Price: fptr(849.99), ReleaseYear: iptr(2017),
		Description: "Ultimate Collector Series Millennium Falcon.",
	}

	p := Parse("biggest expensive star wars falcon")
	got := Score(&falcon, p)
	// theme 10 + size 3 + price 3 + "falcon" in name 2 and description 1,
	// "star"/"wars" neither in name nor description, "biggest"/"expensive" neither.
	want := themeWeight + sizeWeight + priceWeight + nameKeywordWeight + descKeywordWeight
	if got != want {
		t.Errorf("Score = %d, want %d", got, want)
	}

	// Era bonus for newest only applies to post-2010 sets.
	p = Parse("newest technic")
	oldSet := catalog.Set{SetID: "8880-1", Name: "Super Car", Theme: "Technic", PieceCount: 1343, ReleaseYear: iptr(1994)}
	newSet := catalog.Set{SetID: "42115-1", Name: "Lamborghini Sian", Theme: "Technic", PieceCount: 3696, ReleaseYear: iptr(2020)}
	if Score(&newSet, p) <= Score(&oldSet, p) {
		t.Error("Newest modifier did not favor the newer set")
	}

	// Missing price never scores the price bonus.
	p = Parse("cheap city set")
	noPrice := catalog.Set{SetID: "1-1", Name: "Town Square", Theme: "City", PieceCount: 50}
	withPrice := catalog.Set{SetID: "2-1", Name: "Town Corner", Theme: "City", PieceCount: 50, Price: fptr(9.99)}
	if Score(&noPrice, p) >= Score(&withPrice, p) {
		t.Error("Price bonus applied without a price")
	}
}

func TestRank(t *testing.T) {
	sets := []catalog.Set{
		{SetID: "10276-1", Name: "Colosseum", Theme: "Creator Expert", PieceCount: 9036},
		{SetID: "75192-1", Name: "Millennium Falcon", Theme: "Star Wars", PieceCount: 7541, ReleaseYear: iptr(2017)},
		{SetID: "75375-1", Name: "Millennium Falcon Midi", Theme: "Star Wars", PieceCount: 921, ReleaseYear: iptr(2024)},
	}

	p := Parse("biggest star wars set")
	ranked := Rank(sets, p)
	if ranked[0].SetID != "75192-1" {
		t.Errorf("Expected the large Star Wars set first, got %s", ranked[0].SetID)
	}
	if ranked[2].SetID != "10276-1" {
		t.Errorf("Expected the off-theme set last, got %s", ranked[2].SetID)
	}

	// Input slice is not mutated.
	if sets[0].SetID != "10276-1" {
		t.Error("Rank mutated its input")
	}

	// Stable for equal scores.
	p = Parse("anything")
	same := Rank([]catalog.Set{{SetID: "a", Name: "x"}, {SetID: "b", Name: "y"}}, p)
	if same[0].SetID != "a" || same[1].SetID != "b" {
		t.Error("Equal-score order not preserved")
	}
}
