package deals

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
	Search   string
	Skip     int
	Limit    int
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

const dealColumns = `id, title, description, price, original_price, discount, url, source, images, category, valid_until, created_at`

func (r *Repo) GetByID(ctx context.Context, id int64) (*models.DealDB, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+dealColumns+`
		FROM deals
		WHERE id = ?
	`, id)

	d, err := scanDeal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan getByID: %w", err)
	}
	return d, nil
}

func (r *Repo) List(ctx context.Context, q ListQuery) ([]models.DealDB, error) {
	sqlStr, args := buildListSQL(q, false)

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	out := make([]models.DealDB, 0, q.Limit)
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		out = append(out, *d)
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

type scannable interface {
	Scan(dest ...any) error
}

func scanDeal(row scannable) (*models.DealDB, error) {
	var (
		d             models.DealDB
		description   sql.NullString
		price         sql.NullString
		originalPrice sql.NullString
		discount      sql.NullString
		url           sql.NullString
		imagesJSON    sql.NullString
		category      sql.NullString
		validUntil    sql.NullString
	)

	if err := row.Scan(
		&d.ID, &d.Title, &description, &price, &originalPrice, &discount,
		&url, &d.Source, &imagesJSON, &category, &validUntil, &d.CreatedAt,
	); err != nil {
		return nil, err
	}

	d.Description = description.String
	d.Price = price.String
	d.OriginalPrice = originalPrice.String
	d.Discount = discount.String
	d.URL = url.String
	d.Category = category.String
	d.ValidUntil = validUntil.String

	d.Images = []string{}
	if imagesJSON.Valid && imagesJSON.String != "" {
		_ = json.Unmarshal([]byte(imagesJSON.String), &d.Images)
	}
	return &d, nil
}

func buildListSQL(q ListQuery, countOnly bool) (string, []any) {
	baseSelect := `SELECT ` + dealColumns + ` FROM deals`
	if countOnly {
		baseSelect = `SELECT COUNT(*) FROM deals`
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
