package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	DB     *sql.DB
	DBPath string
}

func GetDefaultDBPath() (string, error) {
	if path := os.Getenv("BRICKMIND_DB"); path != "" {
		return path, nil
	}

	cacheDir := os.Getenv("XDG_CACHE_HOME")
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		cacheDir = filepath.Join(home, ".cache")
	}

	dir := filepath.Join(cacheDir, "brickmind")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "catalog.sqlite"), nil
}

func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		var err error
		dbPath, err = GetDefaultDBPath()
		if err != nil {
			return nil, err
		}
	}

	// Enable WAL mode via DSN
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=on", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &Store{DB: db, DBPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

// Status holds catalog stats for the status command.
type Status struct {
	DBPath         string
	SetCount       int
	VectorCount    int
	NeedsEmbedding int
	CachedAnswers  int
	Themes         []ThemeStatus
}

// ThemeStatus is per-theme stats.
type ThemeStatus struct {
	Name         string
	SetCount     int
	LastModified string
}

// GetStatus returns database path, set/vector/cache counts, and per-theme stats.
func (s *Store) GetStatus() (*Status, error) {
	st := &Status{DBPath: s.DBPath}
	if err := s.DB.QueryRow(`SELECT COUNT(*) FROM lego_sets`).Scan(&st.SetCount); err != nil {
		return nil, err
	}
	_ = s.DB.QueryRow(`SELECT COUNT(*) FROM set_vectors`).Scan(&st.VectorCount)
	_ = s.DB.QueryRow(`SELECT COUNT(*) FROM answer_cache`).Scan(&st.CachedAnswers)
	st.NeedsEmbedding, _ = s.CountNeedingEmbedding()

	rows, err := s.DB.Query(`
		SELECT theme, COUNT(*) as cnt, MAX(modified_at) as last_modified
		FROM lego_sets
		GROUP BY theme
		ORDER BY cnt DESC, theme
	`)
	if err != nil {
		return st, nil
	}
	defer rows.Close()
	for rows.Next() {
		var t ThemeStatus
		var lastMod sql.NullString
		if err := rows.Scan(&t.Name, &t.SetCount, &lastMod); err != nil {
			continue
		}
		if lastMod.Valid {
			t.LastModified = lastMod.String
		}
		st.Themes = append(st.Themes, t)
	}
	return st, rows.Err()
}

func (s *Store) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS lego_sets (
			set_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			theme TEXT NOT NULL DEFAULT '',
			piece_count INTEGER NOT NULL DEFAULT 0,
			price REAL,
			release_year INTEGER,
			description TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			modified_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_lego_sets_theme ON lego_sets(theme)`,
		`CREATE INDEX IF NOT EXISTS idx_lego_sets_year ON lego_sets(release_year)`,
		`CREATE INDEX IF NOT EXISTS idx_lego_sets_pieces ON lego_sets(piece_count)`,
		`CREATE TABLE IF NOT EXISTS answer_cache (
			hash TEXT PRIMARY KEY,
			answer TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS set_vectors (
			set_id TEXT PRIMARY KEY,
			model TEXT NOT NULL,
			embedded_at TEXT NOT NULL,
			FOREIGN KEY (set_id) REFERENCES lego_sets(set_id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS set_embeddings (
			set_id TEXT PRIMARY KEY,
			embedding BLOB NOT NULL
		)`,
		// FTS5 table
		`CREATE VIRTUAL TABLE IF NOT EXISTS lego_sets_fts USING fts5(
			set_id, name, theme, body,
			tokenize='porter unicode61'
		)`,
		// Triggers
		`CREATE TRIGGER IF NOT EXISTS lego_sets_ai AFTER INSERT ON lego_sets
		BEGIN
			INSERT INTO lego_sets_fts(rowid, set_id, name, theme, body)
			VALUES (new.rowid, new.set_id, new.name, new.theme, new.description);
		END`,
		`CREATE TRIGGER IF NOT EXISTS lego_sets_ad AFTER DELETE ON lego_sets BEGIN
			DELETE FROM lego_sets_fts WHERE rowid = old.rowid;
		END`,
		`CREATE TRIGGER IF NOT EXISTS lego_sets_au AFTER UPDATE ON lego_sets
		BEGIN
			DELETE FROM lego_sets_fts WHERE rowid = old.rowid;
			INSERT INTO lego_sets_fts(rowid, set_id, name, theme, body)
			VALUES (new.rowid, new.set_id, new.name, new.theme, new.description);
		END`,
	}

	for _, query := range queries {
		if _, err := s.DB.Exec(query); err != nil {
			return fmt.Errorf("schema init failed: %w (query: %s)", err, query)
		}
	}

	return nil
}
