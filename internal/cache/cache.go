// Package cache persists OCR-extracted text keyed by image content hash so
// re-scans of unchanged images skip recognition, by far the slowest stage.
// Detection always re-runs: only the extracted text is cached, never
// findings, so category or heuristic changes take effect without a flush.
package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// DB maps image content hashes (xxhash hex) to the text OCR produced.
type DB struct {
	Entries map[string]string `json:"entries"`
}

func defaultPath(root string) string {
	return filepath.Join(root, ".sensiscan_cache.json")
}

// Load reads the cache stored under root. A missing or corrupt cache file
// yields an empty DB and the error; callers typically ignore it.
func Load(root string) (DB, error) {
	var db DB
	f, err := os.ReadFile(defaultPath(root))
	if err != nil {
		return DB{Entries: map[string]string{}}, err
	}
	if err := json.Unmarshal(f, &db); err != nil {
		return DB{Entries: map[string]string{}}, err
	}
	if db.Entries == nil {
		db.Entries = map[string]string{}
	}
	return db, nil
}

// Save writes the cache under root.
func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	b, _ := json.MarshalIndent(db, "", "  ")
	return os.WriteFile(defaultPath(root), b, 0644)
}
