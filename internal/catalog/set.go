package catalog

import (
	"fmt"
	"strings"
	"time"
)

// Set is one LEGO set record aggregated from the provider APIs.
// Price and ReleaseYear are pointers because not every provider reports
// them; a missing price must stay distinguishable from a free set.
type Set struct {
	SetID       string   `json:"set_id"`
	Name        string   `json:"name"`
	Theme       string   `json:"theme"`
	PieceCount  int      `json:"piece_count"`
	Price       *float64 `json:"price,omitempty"`
	ReleaseYear *int     `json:"release_year,omitempty"`
	Description string   `json:"description,omitempty"`
}

const (
	minReleaseYear = 1949 // first LEGO brick sets
	maxYearSlack   = 2    // pre-announced sets carry next year's date
)

// Validate checks the constraints a set must satisfy before it is stored.
func (s *Set) Validate() error {
	if strings.TrimSpace(s.SetID) == "" {
		return fmt.Errorf("set: missing set_id")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("set %s: missing name", s.SetID)
	}
	if s.PieceCount < 0 {
		return fmt.Errorf("set %s: negative piece count %d", s.SetID, s.PieceCount)
	}
	if s.Price != nil && *s.Price < 0 {
		return fmt.Errorf("set %s: negative price %.2f", s.SetID, *s.Price)
	}
	if s.ReleaseYear != nil {
		y := *s.ReleaseYear
		if y < minReleaseYear || y > time.Now().Year()+maxYearSlack {
			return fmt.Errorf("set %s: implausible release year %d", s.SetID, y)
		}
	}
	return nil
}

// EmbedText is the text that represents this set in the vector index.
// Falls back to name when there is no description, matching how sets
// were originally indexed for semantic search.
func (s *Set) EmbedText() string {
	var b strings.Builder
	b.WriteString(s.Name)
	if s.Theme != "" {
		b.WriteString(" | ")
		b.WriteString(s.Theme)
	}
	if s.Description != "" {
		b.WriteString(" | ")
		b.WriteString(s.Description)
	}
	return b.String()
}

// Answer is the assistant's reply to one user query.
type Answer struct {
	Sets     []Set  `json:"sets"`
	Response string `json:"ai_response,omitempty"`
	Cached   bool   `json:"cached,omitempty"`
}
