package events

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "description", "date", "location", "category",
		"price", "url", "source", "images", "contact", "content", "created_at",
	})
}

func TestListAppliesFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM events WHERE source = \? AND category = \? AND \(title LIKE \? OR description LIKE \?\) ORDER BY created_at DESC LIMIT \? OFFSET \?`).
		WithArgs("Culture.gov.gr", "Theater", "%tragedy%", "%tragedy%", 5, 10).
		WillReturnRows(eventRows().AddRow(
			1, "Antigone", "A tragedy", "2026-02-15", "Athens", "Theater",
			"30", "https://a/e1", "Culture.gov.gr", `["a.jpg"]`, nil, `{"region":"Αττική"}`, time.Now(),
		))

	out, err := NewRepo(db).List(context.Background(), ListQuery{
		Source:   "Culture.gov.gr",
		Category: "Theater",
		Search:   "tragedy",
		Skip:     10,
		Limit:    5,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Antigone", out[0].Title)
	assert.Equal(t, []string{"a.jpg"}, out[0].Images)
	assert.Equal(t, "Αττική", out[0].Content["region"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT .+ FROM events.+WHERE id = \?`).
		WithArgs(int64(42)).
		WillReturnRows(eventRows())

	ev, err := NewRepo(db).GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, ev)
}

func TestCountBy(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT source, COUNT\(\*\)`).
		WillReturnRows(sqlmock.NewRows([]string{"source", "count"}).
			AddRow("Culture.gov.gr", 12).
			AddRow("More.com", 7))

	out, err := NewRepo(db).CountBy(context.Background(), "source")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Culture.gov.gr": 12, "More.com": 7}, out)

	_, err = NewRepo(db).CountBy(context.Background(), "title; DROP TABLE events")
	require.Error(t, err)
}
