package scraper

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"eventhub/pkg/models"
)

// Store is the persistence boundary the orchestrator writes through.
// Implementations must keep calls independent: a failed Insert must
// not poison the next one.
type Store interface {
	ExistsByURL(ctx context.Context, url string) (bool, error)
	InsertEvent(ctx context.Context, ev models.CanonicalEvent) error
}

// SQLStore persists canonical events into the events table.
type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) ExistsByURL(ctx context.Context, url string) (bool, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE url = ?`, url).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("exists by url: %w", err)
	}
	return n > 0, nil
}

// InsertEvent writes one canonical event in its own short transaction.
// One commit per record: a failure here rolls back this record only
// and the caller moves on to the next one.
func (s *SQLStore) InsertEvent(ctx context.Context, ev models.CanonicalEvent) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	location := ev.Location
	if location == "" {
		location = ev.Venue
	}

	images := []string{}
	if ev.Image != nil && *ev.Image != "" {
		images = append(images, *ev.Image)
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return fmt.Errorf("marshal images for %q: %w", ev.URL, err)
	}

	content, err := json.Marshal(map[string]any{
		"region": ev.Region,
		"venue":  ev.Venue,
	})
	if err != nil {
		return fmt.Errorf("marshal content for %q: %w", ev.URL, err)
	}

	var date any
	if ev.Date != nil {
		date = *ev.Date
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO events (title, description, date, location, category, price, url, source, images, contact, content, full_text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, ?, NULL)
	`,
		ev.Title,
		ev.Description,
		date,
		location,
		ev.Category,
		strconv.Itoa(ev.Price),
		ev.URL,
		ev.Source,
		string(imagesJSON),
		string(content),
	); err != nil {
		return fmt.Errorf("insert event %q: %w", ev.URL, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit event %q: %w", ev.URL, err)
	}
	return nil
}
