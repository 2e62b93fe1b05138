package scraper

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/pkg/models"
)

func TestWriteSnapshotPreservesGreekText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scraped_data", "combined_events.json")

	events := []models.CanonicalEvent{{
		ID:     1,
		Title:  "Φεστιβάλ Αθηνών",
		Region: "Αττική",
		URL:    "https://a/e1?x=1&y=2",
	}}

	require.NoError(t, WriteSnapshot(path, events))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, "Φεστιβάλ Αθηνών")      // no \u escapes
	assert.Contains(t, s, "https://a/e1?x=1&y=2") // no HTML escaping
}

func TestWriteSnapshotOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combined_events.json")

	require.NoError(t, WriteSnapshot(path, []models.CanonicalEvent{{ID: 1, Title: "old"}}))
	require.NoError(t, WriteSnapshot(path, []models.CanonicalEvent{{ID: 1, Title: "new"}}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "new")
	assert.NotContains(t, string(b), "old")

	// no temp files are left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".combined_events-"), "leftover temp file %s", e.Name())
	}
}

func TestWriteSnapshotEmptyBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combined_events.json")
	require.NoError(t, WriteSnapshot(path, nil))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(b)))
}
