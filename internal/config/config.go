package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

func GetConfigDir() (string, error) {
	if dir := os.Getenv("BRICKMIND_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "brickmind"), nil
}

func GetConfigFilePath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yml"), nil
}

func EnsureConfigDir() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

func LoadConfig() (*Config, error) {
	path, err := GetConfigFilePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{Watchlists: make(map[string]Watchlist)}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Watchlists == nil {
		cfg.Watchlists = make(map[string]Watchlist)
	}
	return &cfg, nil
}

func SaveConfig(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := GetConfigFilePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetGlobalNote sets or clears the note that applies to every theme.
func SetGlobalNote(cfg *Config, text string) {
	cfg.GlobalNote = text
}

// SetNote adds or replaces the collector note for a theme.
func SetNote(cfg *Config, theme, text string) {
	if cfg.Notes == nil {
		cfg.Notes = make(map[string]string)
	}
	cfg.Notes[theme] = text
}

// RemoveNote removes the note for a theme. Returns false if not found.
func RemoveNote(cfg *Config, theme string) bool {
	if cfg.Notes == nil {
		return false
	}
	if _, ok := cfg.Notes[theme]; !ok {
		return false
	}
	delete(cfg.Notes, theme)
	if len(cfg.Notes) == 0 {
		cfg.Notes = nil
	}
	return true
}

// NoteEntry is a single note listing entry.
type NoteEntry struct {
	Theme string
	Note  string
}

// ListNotes returns all configured notes, global first, then by theme.
func ListNotes(cfg *Config) []NoteEntry {
	var out []NoteEntry
	if cfg.GlobalNote != "" {
		out = append(out, NoteEntry{Theme: "*", Note: cfg.GlobalNote})
	}
	themes := make([]string, 0, len(cfg.Notes))
	for t := range cfg.Notes {
		themes = append(themes, t)
	}
	sort.Strings(themes)
	for _, t := range themes {
		out = append(out, NoteEntry{Theme: t, Note: cfg.Notes[t]})
	}
	return out
}

// FindNoteForTheme returns the most specific note for a theme: an exact
// case-insensitive match wins, then the longest note key that prefixes the
// theme ("Star Wars" matches "Star Wars UCS"), then the global note.
func FindNoteForTheme(cfg *Config, theme string) string {
	lower := strings.ToLower(strings.TrimSpace(theme))
	bestLen := 0
	var best string
	for key, note := range cfg.Notes {
		k := strings.ToLower(key)
		if k == lower {
			return note
		}
		if strings.HasPrefix(lower, k+" ") && len(k) > bestLen {
			bestLen = len(k)
			best = note
		}
	}
	if best != "" {
		return best
	}
	return cfg.GlobalNote
}
