package catalog

import (
	"strings"
	"testing"
)

func fptr(f float64) *float64 { return &f }
func iptr(i int) *int         { return &i }

func TestValidate(t *testing.T) {
	valid := Set{
		SetID:       "75192-1",
		Name:        "Millennium Falcon",
		Theme:       "Star Wars",
		PieceCount:  7541,
		Price:       fptr(849.99),
		ReleaseYear: iptr(2017),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid set rejected: %v", err)
	}

	cases := []struct {
		name string
		mut  func(*Set)
		want string
	}{
		{"missing id", func(s *Set) { s.SetID = "  " }, "set_id"},
		{"missing name", func(s *Set) { s.Name = "" }, "name"},
		{"negative pieces", func(s *Set) { s.PieceCount = -1 }, "piece count"},
		{"negative price", func(s *Set) { s.Price = fptr(-1) }, "price"},
		{"year too old", func(s *Set) { s.ReleaseYear = iptr(1920) }, "release year"},
		{"year in far future", func(s *Set) { s.ReleaseYear = iptr(2999) }, "release year"},
	}
	for _, c := range cases {
		s := valid
		c.mut(&s)
		err := s.Validate()
		if err == nil {
			t.Errorf("%s: expected error, got nil", c.name)
			continue
		}
		if !strings.Contains(err.Error(), c.want) {
			t.Errorf("%s: error %q does not mention %q", c.name, err, c.want)
		}
	}

	// Nil price and year are fine: providers often omit them.
	s := valid
	s.Price = nil
	s.ReleaseYear = nil
	if err := s.Validate(); err != nil {
		t.Errorf("set without price/year rejected: %v", err)
	}
}

func TestEmbedText(t *testing.T) {
	s := Set{SetID: "10276-1", Name: "Colosseum", Theme: "Creator Expert", Description: "The largest LEGO set ever."}
	got := s.EmbedText()
	if got != "Colosseum | Creator Expert | The largest LEGO set ever." {
		t.Errorf("unexpected embed text: %q", got)
	}

	bare := Set{SetID: "123-1", Name: "Basic Bricks"}
	if bare.EmbedText() != "Basic Bricks" {
		t.Errorf("expected name fallback, got %q", bare.EmbedText())
	}
}
