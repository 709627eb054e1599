package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/brickmind/brickmind/internal/catalog"
)

// UpsertSet inserts or refreshes one set. created_at is preserved on
// conflict; a changed embed text drops the stale vector so the next
// 'embed' run picks the set up again. Returns true when the set was new.
func (s *Store) UpsertSet(set *catalog.Set, source string, now time.Time) (bool, error) {
	if err := set.Validate(); err != nil {
		return false, err
	}

	var oldText string
	existed := true
	err := s.DB.QueryRow(
		`SELECT name || '|' || theme || '|' || description FROM lego_sets WHERE set_id = ?`,
		set.SetID,
	).Scan(&oldText)
	if err == sql.ErrNoRows {
		existed = false
	} else if err != nil {
		return false, err
	}

	ts := now.Format(time.RFC3339)
	_, err = s.DB.Exec(`
		INSERT INTO lego_sets (set_id, name, theme, piece_count, price, release_year, description, source, created_at, modified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(set_id) DO UPDATE SET
			name = excluded.name,
			theme = excluded.theme,
			piece_count = excluded.piece_count,
			price = excluded.price,
			release_year = excluded.release_year,
			description = excluded.description,
			source = excluded.source,
			modified_at = excluded.modified_at
	`, set.SetID, set.Name, set.Theme, set.PieceCount, nullFloat(set.Price), nullInt(set.ReleaseYear),
		set.Description, source, ts, ts)
	if err != nil {
		return false, err
	}

	if existed && oldText != set.Name+"|"+set.Theme+"|"+set.Description {
		if err := s.DeleteEmbedding(set.SetID); err != nil {
			return false, err
		}
	}
	return !existed, nil
}

// GetSet returns one set by id, or sql.ErrNoRows.
func (s *Store) GetSet(setID string) (*catalog.Set, error) {
	row := s.DB.QueryRow(`
		SELECT set_id, name, theme, piece_count, price, release_year, description
		FROM lego_sets WHERE set_id = ?
	`, setID)
	return scanSet(row)
}

// SearchByName is the structured LIKE lookup used by the assistant.
func (s *Store) SearchByName(substr string, limit int) ([]catalog.Set, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.DB.Query(`
		SELECT set_id, name, theme, piece_count, price, release_year, description
		FROM lego_sets
		WHERE name LIKE ?
		ORDER BY name
		LIMIT ?
	`, "%"+substr+"%", limit)
	if err != nil {
		return nil, err
	}
	return scanSets(rows)
}

// ListFilter narrows and orders ListSets output.
type ListFilter struct {
	Theme   string
	Year    int
	OrderBy string // name, year, year_desc, pieces, pieces_desc, price, price_desc
	Limit   int
}

func (s *Store) ListSets(f ListFilter) ([]catalog.Set, error) {
	q := `SELECT set_id, name, theme, piece_count, price, release_year, description FROM lego_sets`
	var conds []string
	var args []interface{}
	if f.Theme != "" {
		conds = append(conds, `theme = ? COLLATE NOCASE`)
		args = append(args, f.Theme)
	}
	if f.Year != 0 {
		conds = append(conds, `release_year = ?`)
		args = append(args, f.Year)
	}
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, ` AND `)
	}

	switch f.OrderBy {
	case "", "name":
		q += ` ORDER BY name`
	case "year":
		q += ` ORDER BY release_year ASC NULLS LAST, name`
	case "year_desc":
		q += ` ORDER BY release_year DESC NULLS LAST, name`
	case "pieces":
		q += ` ORDER BY piece_count ASC, name`
	case "pieces_desc":
		q += ` ORDER BY piece_count DESC, name`
	case "price":
		q += ` ORDER BY price ASC NULLS LAST, name`
	case "price_desc":
		q += ` ORDER BY price DESC NULLS LAST, name`
	default:
		return nil, fmt.Errorf("unknown order: %s", f.OrderBy)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	q += ` LIMIT ?`
	args = append(args, limit)

	rows, err := s.DB.Query(q, args...)
	if err != nil {
		return nil, err
	}
	return scanSets(rows)
}

// ThemeCount is one theme with its set count.
type ThemeCount struct {
	Theme string
	Count int
}

func (s *Store) Themes() ([]ThemeCount, error) {
	rows, err := s.DB.Query(`
		SELECT theme, COUNT(*) FROM lego_sets GROUP BY theme ORDER BY theme
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ThemeCount
	for rows.Next() {
		var t ThemeCount
		if err := rows.Scan(&t.Theme, &t.Count); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) DeleteSet(setID string) error {
	if err := s.DeleteEmbedding(setID); err != nil {
		return err
	}
	_, err := s.DB.Exec(`DELETE FROM lego_sets WHERE set_id = ?`, setID)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSet(row rowScanner) (*catalog.Set, error) {
	var set catalog.Set
	var price sql.NullFloat64
	var year sql.NullInt64
	if err := row.Scan(&set.SetID, &set.Name, &set.Theme, &set.PieceCount, &price, &year, &set.Description); err != nil {
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
	return &set, nil
}

func scanSets(rows *sql.Rows) ([]catalog.Set, error) {
	defer rows.Close()
	var out []catalog.Set
	for rows.Next() {
		set, err := scanSet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *set)
	}
	return out, rows.Err()
}

func nullFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func nullInt(i *int) interface{} {
	if i == nil {
		return nil
	}
	return *i
}
