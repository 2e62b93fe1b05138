package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/pkg/models"
)

func TestSQLStoreExistsByURL(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events WHERE url = \?`).
		WithArgs("https://a/e1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := NewSQLStore(db).ExistsByURL(context.Background(), "https://a/e1")
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreInsertEventCommitsOwnTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	img := "https://a/img.jpg"
	date := "2026-02-15"
	ev := models.CanonicalEvent{
		ID:       1,
		Title:    "Concert",
		Date:     &date,
		Region:   "Αττική",
		Category: "Concert",
		Venue:    "Herodion",
		URL:      "https://a/e1",
		EventURL: "https://a/e1",
		Image:    &img,
		Price:    30,
		Source:   "Culture.gov.gr",
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO events`).
		WithArgs(
			"Concert",
			"",
			"2026-02-15",
			"Herodion", // location falls back to venue
			"Concert",
			"30",
			"https://a/e1",
			"Culture.gov.gr",
			`["https://a/img.jpg"]`,
			sqlmock.AnyArg(), // content JSON: map key order not fixed
		).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, NewSQLStore(db).InsertEvent(context.Background(), ev))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreInsertEventRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO events`).
		WillReturnError(errors.New("UNIQUE constraint failed: events.url"))
	mock.ExpectRollback()

	err = NewSQLStore(db).InsertEvent(context.Background(), models.CanonicalEvent{
		Title: "Dup", URL: "https://a/e1",
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
