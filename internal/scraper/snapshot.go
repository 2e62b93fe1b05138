package scraper

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"eventhub/pkg/models"
)

// WriteSnapshot dumps the full canonical batch as JSON at path,
// replacing whatever a previous run left there. The file is written to
// a temp name in the same directory and renamed into place, so a
// reader sees either the old or the new complete file. Greek text is
// kept as-is (no HTML escaping).
func WriteSnapshot(path string, events []models.CanonicalEvent) error {
	if events == nil {
		events = []models.CanonicalEvent{} // empty runs still produce "[]"
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".combined_events-*.json")
	if err != nil {
		return fmt.Errorf("create snapshot temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(events); err != nil {
		tmp.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot temp: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
