package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brickmind/brickmind/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "brickmind-import-*.sqlite")
	if err != nil {
		t.Fatal(err)
	}
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	s, err := store.NewStore(tmpFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

const rebrickableDump = `set_num,name,year,theme_name,num_parts
75192-1,Millennium Falcon,2017,Star Wars,7541
10276-1,Colosseum,2020,Creator Expert,9036
,No Id Row,2020,City,10
`

const pricedDump = `set_id,name,theme,pieces,price,description
75375-1,Millennium Falcon Midi,Star Wars,921,84.99,Midi-scale Falcon.
`

func TestImportFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dumps/sets.csv", rebrickableDump)
	writeFile(t, dir, "dumps/priced.csv", pricedDump)
	writeFile(t, dir, "notes.txt", "not a csv")

	s := newTestStore(t)
	res, err := ImportFiles(s, dir, "**/*.csv")
	if err != nil {
		t.Fatalf("ImportFiles failed: %v", err)
	}

	if res.Files != 2 {
		t.Errorf("Expected 2 files, got %d", res.Files)
	}
	if res.Imported != 3 {
		t.Errorf("Expected 3 imported, got %d", res.Imported)
	}
	if res.Skipped != 1 {
		t.Errorf("Expected 1 skipped (missing id), got %d", res.Skipped)
	}

	falcon, err := s.GetSet("75192-1")
	if err != nil {
		t.Fatalf("Imported set not found: %v", err)
	}
	if falcon.Theme != "Star Wars" || falcon.PieceCount != 7541 {
		t.Errorf("Field mapping wrong: %+v", falcon)
	}
	if falcon.ReleaseYear == nil || *falcon.ReleaseYear != 2017 {
		t.Errorf("Year not mapped: %+v", falcon.ReleaseYear)
	}

	midi, err := s.GetSet("75375-1")
	if err != nil {
		t.Fatal(err)
	}
	if midi.Price == nil || *midi.Price != 84.99 {
		t.Errorf("Price not mapped: %+v", midi.Price)
	}
	if midi.Description != "Midi-scale Falcon." {
		t.Errorf("Description not mapped: %q", midi.Description)
	}
}

func TestImportIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sets.csv", pricedDump)

	s := newTestStore(t)
	first, err := ImportFiles(s, dir, "*.csv")
	if err != nil {
		t.Fatal(err)
	}
	if first.Imported != 1 || first.Updated != 0 {
		t.Errorf("First run: %+v", first)
	}

	second, err := ImportFiles(s, dir, "*.csv")
	if err != nil {
		t.Fatal(err)
	}
	if second.Imported != 0 || second.Updated != 1 {
		t.Errorf("Second run should update, not insert: %+v", second)
	}
}

func TestImportBadHeader(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.csv", "foo,bar\n1,2\n")

	s := newTestStore(t)
	res, err := ImportFiles(s, dir, "*.csv")
	if err != nil {
		t.Fatalf("Per-file errors must not abort the run: %v", err)
	}
	if res.Imported != 0 {
		t.Errorf("Nothing should import from a bad header: %+v", res)
	}
}
