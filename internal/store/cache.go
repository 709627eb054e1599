package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"time"
)

// AnswerCacheKey derives the cache key for one generated answer: the model
// plus the exact prompt that produced it.
func AnswerCacheKey(model, prompt string) string {
	hash := sha256.Sum256([]byte(model + "\x00" + prompt))
	return hex.EncodeToString(hash[:])
}

// GetCachedAnswer returns a previously generated answer, if any.
func (s *Store) GetCachedAnswer(key string) (string, bool, error) {
	var answer string
	err := s.DB.QueryRow(`SELECT answer FROM answer_cache WHERE hash = ?`, key).Scan(&answer)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return answer, true, nil
}

// PutCachedAnswer stores a generated answer under its key.
func (s *Store) PutCachedAnswer(key, answer string, now time.Time) error {
	_, err := s.DB.Exec(`INSERT OR REPLACE INTO answer_cache (hash, answer, created_at) VALUES (?, ?, ?)`,
		key, answer, now.Format(time.RFC3339))
	return err
}

// ClearAnswerCache drops all cached answers. Returns the number removed.
func (s *Store) ClearAnswerCache() (int64, error) {
	res, err := s.DB.Exec(`DELETE FROM answer_cache`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
