// Package importer loads catalog dump files (Rebrickable-style CSV) into
// the local store.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/brickmind/brickmind/internal/catalog"
	"github.com/brickmind/brickmind/internal/store"
)

// Result summarizes one import run.
type Result struct {
	Files    int
	Imported int
	Updated  int
	Skipped  int
}

// ImportFiles imports every CSV under rootPath matching pattern.
func ImportFiles(s *store.Store, rootPath, pattern string) (*Result, error) {
	fsys := os.DirFS(rootPath)

	files, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	now := time.Now()

	for _, relPath := range files {
		fullPath := filepath.Join(rootPath, relPath)
		info, err := os.Stat(fullPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error stating file %s: %v\n", fullPath, err)
			continue
		}
		if info.IsDir() {
			continue
		}

		f, err := os.Open(fullPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening file %s: %v\n", fullPath, err)
			continue
		}
		res.Files++
		if err := importCSV(s, f, now, res); err != nil {
			fmt.Fprintf(os.Stderr, "Error importing %s: %v\n", relPath, err)
		}
		f.Close()
	}

	return res, nil
}

// importCSV reads one header-mapped CSV stream. Recognized headers:
// set_id/set_num, name, theme, year/release_year, pieces/num_parts/
// piece_count, price, description. Unknown columns are ignored.
func importCSV(s *store.Store, r io.Reader, now time.Time, res *Result) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	cols := mapColumns(header)
	if cols["set_id"] < 0 || cols["name"] < 0 {
		return fmt.Errorf("header has no set id or name column")
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Skipped++
			continue
		}

		set := recordToSet(record, cols)
		if set == nil {
			res.Skipped++
			continue
		}
		created, err := s.UpsertSet(set, "import", now)
		if err != nil {
			res.Skipped++
			continue
		}
		if created {
			res.Imported++
		} else {
			res.Updated++
		}
	}
	return nil
}

var columnAliases = map[string]string{
	"set_id":       "set_id",
	"set_num":      "set_id",
	"name":         "name",
	"theme":        "theme",
	"theme_name":   "theme",
	"year":         "year",
	"release_year": "year",
	"pieces":       "pieces",
	"num_parts":    "pieces",
	"piece_count":  "pieces",
	"price":        "price",
	"retail_price": "price",
	"description":  "description",
}

func mapColumns(header []string) map[string]int {
	cols := map[string]int{
		"set_id": -1, "name": -1, "theme": -1, "year": -1,
		"pieces": -1, "price": -1, "description": -1,
	}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if canonical, ok := columnAliases[key]; ok && cols[canonical] < 0 {
			cols[canonical] = i
		}
	}
	return cols
}

func recordToSet(record []string, cols map[string]int) *catalog.Set {
	field := func(name string) string {
		idx := cols[name]
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	set := &catalog.Set{
		SetID:       field("set_id"),
		Name:        field("name"),
		Theme:       field("theme"),
		Description: field("description"),
	}
	if set.SetID == "" || set.Name == "" {
		return nil
	}

	if v := field("pieces"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			set.PieceCount = n
		}
	}
	if v := field("year"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			set.ReleaseYear = &n
		}
	}
	if v := field("price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			set.Price = &p
		}
	}
	return set
}
