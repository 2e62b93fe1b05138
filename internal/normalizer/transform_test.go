package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/pkg/models"
)

func TestTransformAllAssignsSequentialIDs(t *testing.T) {
	batches := []SourceBatch{
		{Key: "culture_gov", Events: []models.RawEvent{
			{"title": "Event A"},
			{"title": "Event B"},
		}},
		{Key: "visitgreece", Events: []models.RawEvent{
			{"title": "Event C"},
		}},
	}

	out := NewTransformer().TransformAll(batches)
	require.Len(t, out, 3)
	assert.Equal(t, 1, out[0].ID)
	assert.Equal(t, 2, out[1].ID)
	assert.Equal(t, 3, out[2].ID)
	assert.Equal(t, "Culture.gov.gr", out[0].Source)
	assert.Equal(t, "VisitGreece.gr", out[2].Source)
}

func TestTransformAllSkipsRejectedRecords(t *testing.T) {
	batches := []SourceBatch{
		{Key: "culture_gov", Events: []models.RawEvent{
			{"title": "Kept"},
			{"title": "   "},
			{"title": "Also kept"},
		}},
	}

	tr := NewTransformer()
	out := tr.TransformAll(batches)
	require.Len(t, out, 2)

	// ids stay contiguous: the counter only moves for accepted records
	assert.Equal(t, 1, out[0].ID)
	assert.Equal(t, 2, out[1].ID)
	assert.Equal(t, map[string]int{"culture_gov": 2}, tr.Counts())
}

func TestTransformAllIsolatesSources(t *testing.T) {
	batches := []SourceBatch{
		{Key: "broken", Events: []models.RawEvent{nil, {"title": nil}}},
		{Key: "healthy", Events: []models.RawEvent{{"title": "Fine"}}},
	}

	tr := NewTransformer()
	out := tr.TransformAll(batches)
	require.Len(t, out, 1)
	assert.Equal(t, "Fine", out[0].Title)
	assert.Equal(t, "healthy", out[0].SourceKey)
}

func TestTransformCountsPerSource(t *testing.T) {
	batches := []SourceBatch{
		{Key: "culture_gov", Events: []models.RawEvent{{"title": "a"}, {"title": "b"}}},
		{Key: "more_events", Events: []models.RawEvent{{"title": "c"}}},
		{Key: "pigolampides", Events: nil},
	}

	tr := NewTransformer()
	tr.TransformAll(batches)
	counts := tr.Counts()
	assert.Equal(t, 2, counts["culture_gov"])
	assert.Equal(t, 1, counts["more_events"])
	assert.Equal(t, 0, counts["pigolampides"])
}

// Mirrors the multi-source fixture the legacy system was validated
// against: four sources with different field conventions all end up in
// the one canonical shape.
func TestTransformAllMixedSources(t *testing.T) {
	batches := []SourceBatch{
		{Key: "culture_gov", Events: []models.RawEvent{{
			"title":    "Ancient Greek Theater Performance",
			"content":  []any{"A magnificent performance of ancient Greek tragedy", "Featuring renowned actors"},
			"date":     "15/02/2026",
			"location": "Odeon of Herodes Atticus, Athens",
			"url":      "https://culture.gov.gr/event1",
			"images":   []any{"https://culture.gov.gr/image1.jpg", "https://culture.gov.gr/image2.jpg"},
		}}},
		{Key: "visitgreece", Events: []models.RawEvent{{
			"title":       "Santorini Wine Festival",
			"description": "Experience the finest wines of Santorini",
			"date":        "2026-03-20",
			"location":    "Santorini, Greece",
			"category":    "Festival",
			"price":       "Free",
			"url":         "https://visitgreece.gr/event2",
			"images":      []any{"https://visitgreece.gr/wine.jpg"},
		}}},
		{Key: "more_events", Events: []models.RawEvent{{
			"title":       "Τα μυστικά της ανωτερότητας των Ιταλικών ζυμαρικών",
			"description": "Masterclass για ζυμαρικά",
			"date":        "2026-02-09",
			"location":    "Technopolis - City of Athens, Peiraios 100 & Persefonis, Gazi",
			"category":    "Conference",
			"price":       "30",
			"url":         "https://www.more.com/gr-en/tickets/conference/masterclass-zymarikon/",
			"images":      []any{"https://www.more.com/image.png"},
		}}},
	}

	out := NewTransformer().TransformAll(batches)
	require.Len(t, out, 3)

	theater := out[0]
	assert.Equal(t, "Theater", theater.Category)
	require.NotNil(t, theater.Date)
	assert.Equal(t, "2026-02-15", *theater.Date)
	assert.Equal(t, "Αττική", theater.Region)
	assert.Equal(t, "A magnificent performance of ancient Greek tragedy Featuring renowned actors", theater.Description)
	require.NotNil(t, theater.Image)
	assert.Equal(t, "https://culture.gov.gr/image1.jpg", *theater.Image)

	wine := out[1]
	assert.Equal(t, "Festival", wine.Category)
	assert.Equal(t, 0, wine.Price)
	assert.Equal(t, "Νότιο Αιγαίο", wine.Region)

	pasta := out[2]
	assert.Equal(t, "Conference", pasta.Category)
	assert.Equal(t, 30, pasta.Price)
	assert.Equal(t, "Αττική", pasta.Region)
	assert.Equal(t, "More.com", pasta.Source)
}
