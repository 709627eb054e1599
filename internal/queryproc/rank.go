package queryproc

import (
	"sort"
	"strings"

	"github.com/brickmind/brickmind/internal/catalog"
)

// Relevance weights. Theme identity dominates, era match is worth half,
// size/price fit and name keywords less again.
const (
	themeWeight       = 10
	eraWeight         = 5
	sizeWeight        = 3
	priceWeight       = 3
	nameKeywordWeight = 2
	descKeywordWeight = 1
)

// Score computes the relevance of one set for a parsed query.
func Score(set *catalog.Set, p Parsed) int {
	score := 0

	if p.Theme != "" && strings.Contains(strings.ToLower(set.Theme), strings.ToLower(p.Theme)) {
		score += themeWeight
	}

	if p.TimeModifier != "" && set.ReleaseYear != nil {
		switch {
		case p.TimeModifier == "oldest" && *set.ReleaseYear < 2000:
			score += eraWeight
		case p.TimeModifier == "newest" && *set.ReleaseYear > 2010:
			score += eraWeight
		}
	}

	if p.SizeModifier != "" && set.PieceCount > 0 {
		switch {
		case p.SizeModifier == "largest" && set.PieceCount > 1000:
			score += sizeWeight
		case p.SizeModifier == "smallest" && set.PieceCount < 100:
			score += sizeWeight
		}
	}

	if p.PriceModifier != "" && set.Price != nil {
		switch {
		case p.PriceModifier == "expensive" && *set.Price > 100:
			score += priceWeight
		case p.PriceModifier == "cheap" && *set.Price < 50:
			score += priceWeight
		}
	}

	nameLower := strings.ToLower(set.Name)
	descLower := strings.ToLower(set.Description)
	for _, kw := range p.Keywords {
		if strings.Contains(nameLower, kw) {
			score += nameKeywordWeight
		}
		if descLower != "" && strings.Contains(descLower, kw) {
			score += descKeywordWeight
		}
	}

	return score
}

// Rank orders sets by descending relevance. The sort is stable so equal
// scores keep their input order.
func Rank(sets []catalog.Set, p Parsed) []catalog.Set {
	if len(sets) == 0 {
		return sets
	}
	ranked := make([]catalog.Set, len(sets))
	copy(ranked, sets)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Score(&ranked[i], p) > Score(&ranked[j], p)
	})
	return ranked
}
