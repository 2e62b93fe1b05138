package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"eventhub/pkg/database"
)

func main() {
	var (
		eventsOut = flag.String("events", "data/events.csv", "output CSV path for events")
		dealsOut  = flag.String("deals", "data/deals.csv", "output CSV path for deals")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := exportEvents(ctx, db, *eventsOut); err != nil {
		log.Fatalf("export events failed: %v", err)
	}
	if err := exportDeals(ctx, db, *dealsOut); err != nil {
		log.Fatalf("export deals failed: %v", err)
	}

	log.Printf("exported events to %s and deals to %s", *eventsOut, *dealsOut)
}

func exportEvents(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "title", "date", "location", "category", "price", "url", "source", "created_at"}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
        SELECT id, title, date, location, category, price, url, source, created_at
        FROM events
        ORDER BY created_at DESC
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        string
			title     string
			date      sql.NullString
			location  sql.NullString
			category  sql.NullString
			price     sql.NullString
			url       sql.NullString
			source    string
			createdAt sql.NullTime
		)

		if err := rows.Scan(&id, &title, &date, &location, &category, &price, &url, &source, &createdAt); err != nil {
			return err
		}

		created := ""
		if createdAt.Valid {
			created = createdAt.Time.Format(time.RFC3339)
		}

		if err := w.Write([]string{
			id,
			title,
			date.String,
			location.String,
			category.String,
			price.String,
			url.String,
			source,
			created,
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func exportDeals(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "title", "price", "original_price", "discount", "url", "source", "valid_until"}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
        SELECT id, title, price, original_price, discount, url, source, valid_until
        FROM deals
        ORDER BY created_at DESC
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id            string
			title         string
			price         sql.NullString
			originalPrice sql.NullString
			discount      sql.NullString
			url           sql.NullString
			source        string
			validUntil    sql.NullString
		)

		if err := rows.Scan(&id, &title, &price, &originalPrice, &discount, &url, &source, &validUntil); err != nil {
			return err
		}

		if err := w.Write([]string{
			id,
			title,
			price.String,
			originalPrice.String,
			discount.String,
			url.String,
			source,
			validUntil.String,
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}
