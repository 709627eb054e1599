package store

import (
	"database/sql"
	"encoding/binary"
	"math"
	"time"

	"github.com/brickmind/brickmind/internal/catalog"
)

// SetsNeedingEmbedding returns all sets that do not yet have a vector.
func (s *Store) SetsNeedingEmbedding() ([]catalog.Set, error) {
	rows, err := s.DB.Query(`
		SELECT l.set_id, l.name, l.theme, l.piece_count, l.price, l.release_year, l.description
		FROM lego_sets l
		LEFT JOIN set_vectors v ON l.set_id = v.set_id
		WHERE v.set_id IS NULL
		ORDER BY l.set_id
	`)
	if err != nil {
		return nil, err
	}
	return scanSets(rows)
}

// CountNeedingEmbedding returns the number of sets without a vector.
func (s *Store) CountNeedingEmbedding() (int, error) {
	var n int
	err := s.DB.QueryRow(`
		SELECT COUNT(*)
		FROM lego_sets l
		LEFT JOIN set_vectors v ON l.set_id = v.set_id
		WHERE v.set_id IS NULL
	`).Scan(&n)
	return n, err
}

// HasVectors reports whether any embeddings exist yet.
func (s *Store) HasVectors() bool {
	var n int
	if err := s.DB.QueryRow(`SELECT COUNT(*) FROM set_vectors`).Scan(&n); err != nil {
		return false
	}
	return n > 0
}

// InsertEmbedding stores one vector for a set.
func (s *Store) InsertEmbedding(setID string, embedding []float32, model string, embeddedAt time.Time) error {
	_, err := s.DB.Exec(`
		INSERT OR REPLACE INTO set_vectors (set_id, model, embedded_at) VALUES (?, ?, ?)
	`, setID, model, embeddedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(`
		INSERT OR REPLACE INTO set_embeddings (set_id, embedding) VALUES (?, ?)
	`, setID, float32SliceToBlob(embedding))
	return err
}

// DeleteEmbedding removes the vector for one set, if any.
func (s *Store) DeleteEmbedding(setID string) error {
	if _, err := s.DB.Exec(`DELETE FROM set_vectors WHERE set_id = ?`, setID); err != nil {
		return err
	}
	_, err := s.DB.Exec(`DELETE FROM set_embeddings WHERE set_id = ?`, setID)
	return err
}

// ClearAllEmbeddings removes all vectors (force re-embed).
func (s *Store) ClearAllEmbeddings() error {
	if _, err := s.DB.Exec(`DELETE FROM set_vectors`); err != nil {
		return err
	}
	_, err := s.DB.Exec(`DELETE FROM set_embeddings`)
	return err
}

func float32SliceToBlob(f []float32) []byte {
	b := make([]byte, 4*len(f))
	for i, v := range f {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b
}

// BlobToFloat32Slice decodes a BLOB back to a float32 slice.
func BlobToFloat32Slice(b []byte) []float32 {
	n := len(b) / 4
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}

// VecSearchResult is one vector search hit.
type VecSearchResult struct {
	Set   catalog.Set
	Score float64
}

// SearchVectorsBrute does brute-force cosine similarity search over
// set_embeddings. queryEmbedding must match the stored dimension.
// Results are sorted by score descending.
func (s *Store) SearchVectorsBrute(queryEmbedding []float32, limit int) ([]VecSearchResult, error) {
	rows, err := s.DB.Query(`
		SELECT l.set_id, l.name, l.theme, l.piece_count, l.price, l.release_year, l.description, e.embedding
		FROM set_embeddings e
		JOIN lego_sets l ON l.set_id = e.set_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []VecSearchResult
	for rows.Next() {
		var set catalog.Set
		var price sql.NullFloat64
		var year sql.NullInt64
		var blob []byte
		if err := rows.Scan(&set.SetID, &set.Name, &set.Theme, &set.PieceCount, &price, &year, &set.Description, &blob); err != nil {
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
		sim := cosineSimilarity(queryEmbedding, BlobToFloat32Slice(blob))
		scores = append(scores, VecSearchResult{Set: set, Score: sim})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Sort descending by score
	for i := 0; i < len(scores); i++ {
		for j := i + 1; j < len(scores); j++ {
			if scores[j].Score > scores[i].Score {
				scores[i], scores[j] = scores[j], scores[i]
			}
		}
	}
	if limit <= 0 || limit > len(scores) {
		limit = len(scores)
	}
	return scores[:limit], nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
