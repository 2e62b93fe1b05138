package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"eventhub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

type ListQuery struct {
	Source   string
	Category string
	Search   string // keyword search in title/description
	Skip     int
	Limit    int
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

const eventColumns = `id, title, description, date, location, category, price, url, source, images, contact, content, created_at`

func (r *Repo) GetByID(ctx context.Context, id int64) (*models.EventDB, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE id = ?
	`, id)

	ev, err := scanEvent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan getByID: %w", err)
	}
	return ev, nil
}

func (r *Repo) List(ctx context.Context, q ListQuery) ([]models.EventDB, error) {
	sqlStr, args := buildListSQL(q, false)

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	out := make([]models.EventDB, 0, q.Limit)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		out = append(out, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) Count(ctx context.Context, q ListQuery) (int, error) {
	sqlStr, args := buildListSQL(q, true)
	var total int
	if err := r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count scan: %w", err)
	}
	return total, nil
}

// CountBy groups event counts by the given column ("source" or
// "category"); NULL/empty groups are dropped.
func (r *Repo) CountBy(ctx context.Context, column string) (map[string]int, error) {
	if column != "source" && column != "category" {
		return nil, fmt.Errorf("unsupported group column: %s", column)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+column+`, COUNT(*)
		FROM events
		WHERE `+column+` IS NOT NULL AND `+column+` != ''
		GROUP BY `+column+`
	`)
	if err != nil {
		return nil, fmt.Errorf("count by %s: %w", column, err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("count by %s scan: %w", column, err)
		}
		out[key] = n
	}
	return out, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanEvent(row scannable) (*models.EventDB, error) {
	var (
		ev          models.EventDB
		description sql.NullString
		date        sql.NullString
		location    sql.NullString
		category    sql.NullString
		price       sql.NullString
		url         sql.NullString
		imagesJSON  sql.NullString
		contact     sql.NullString
		contentJSON sql.NullString
	)

	if err := row.Scan(
		&ev.ID, &ev.Title, &description, &date, &location, &category,
		&price, &url, &ev.Source, &imagesJSON, &contact, &contentJSON, &ev.CreatedAt,
	); err != nil {
		return nil, err
	}

	ev.Description = description.String
	ev.Date = date.String
	ev.Location = location.String
	ev.Category = category.String
	ev.Price = price.String
	ev.URL = url.String
	ev.Contact = contact.String

	ev.Images = []string{}
	if imagesJSON.Valid && imagesJSON.String != "" {
		_ = json.Unmarshal([]byte(imagesJSON.String), &ev.Images)
	}
	if contentJSON.Valid && contentJSON.String != "" {
		_ = json.Unmarshal([]byte(contentJSON.String), &ev.Content)
	}
	return &ev, nil
}

// buildListSQL builds either COUNT(*) or the SELECT list, newest rows
// first.
func buildListSQL(q ListQuery, countOnly bool) (string, []any) {
	baseSelect := `SELECT ` + eventColumns + ` FROM events`
	if countOnly {
		baseSelect = `SELECT COUNT(*) FROM events`
	}

	var (
		where []string
		args  []any
	)

	if q.Source != "" {
		where = append(where, "source = ?")
		args = append(args, q.Source)
	}
	if q.Category != "" {
		where = append(where, "category = ?")
		args = append(args, q.Category)
	}
	if q.Search != "" {
		where = append(where, "(title LIKE ? OR description LIKE ?)")
		pat := "%" + q.Search + "%"
		args = append(args, pat, pat)
	}

	sqlStr := baseSelect
	for i, w := range where {
		if i == 0 {
			sqlStr += " WHERE " + w
		} else {
			sqlStr += " AND " + w
		}
	}

	if !countOnly {
		sqlStr += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
		args = append(args, q.Limit, q.Skip)
	}
	return sqlStr, args
}
