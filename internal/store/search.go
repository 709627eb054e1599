package store

import (
	"database/sql"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/brickmind/brickmind/internal/catalog"
)

// SearchResult is one full-text hit with a normalized relevance score.
type SearchResult struct {
	Set    catalog.Set
	Score  float64
	Source string
}

func SanitizeFTS5Term(term string) string {
	reg := regexp.MustCompile(`[^a-zA-Z0-9']`)
	return strings.ToLower(reg.ReplaceAllString(term, ""))
}

func BuildFTS5Query(query string) string {
	terms := strings.Fields(query)
	var validTerms []string
	for _, t := range terms {
		sanitized := SanitizeFTS5Term(t)
		if len(sanitized) > 0 {
			validTerms = append(validTerms, fmt.Sprintf(`"%s"*`, sanitized))
		}
	}
	if len(validTerms) == 0 {
		return ""
	}
	return strings.Join(validTerms, " AND ")
}

// SearchFTS runs a BM25 full-text search over set id, name, theme, and
// description. theme restricts results to one theme when non-empty.
func (s *Store) SearchFTS(query string, limit int, theme string) ([]SearchResult, error) {
	ftsQuery := BuildFTS5Query(query)
	if ftsQuery == "" {
		return []SearchResult{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	q := `
		SELECT
			l.set_id, l.name, l.theme, l.piece_count, l.price, l.release_year, l.description,
			bm25(lego_sets_fts, 5.0, 10.0, 3.0, 1.0) as bm25_score
		FROM lego_sets_fts f
		JOIN lego_sets l ON l.rowid = f.rowid
		WHERE lego_sets_fts MATCH ?`
	args := []interface{}{ftsQuery}
	if theme != "" {
		q += ` AND l.theme = ? COLLATE NOCASE`
		args = append(args, theme)
	}
	q += ` ORDER BY bm25_score ASC LIMIT ?`
	args = append(args, limit)

	rows, err := s.DB.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var set catalog.Set
		var price sql.NullFloat64
		var year sql.NullInt64
		var bm25Score float64
		if err := rows.Scan(&set.SetID, &set.Name, &set.Theme, &set.PieceCount, &price, &year, &set.Description, &bm25Score); err != nil {
			return nil, err
		}
		if price.Valid {
			p := price.Float64
			set.Price = &p
		}
		if year.Valid {
			y := int(year.Int64)
			set.ReleaseYear = &y
		}
		// Normalize BM25 (negative, lower is better)
		// Map to 0-1 where higher is better using sigmoid-ish logic from original
		absScore := math.Abs(bm25Score)
		results = append(results, SearchResult{
			Set:    set,
			Score:  1.0 / (1.0 + math.Exp(-(absScore-5.0)/3.0)),
			Source: "fts",
		})
	}
	return results, rows.Err()
}
