package models

import "time"

// DealDB is a persisted deal row from the deals table.
type DealDB struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Price         string    `json:"price,omitempty"`
	OriginalPrice string    `json:"original_price,omitempty"`
	Discount      string    `json:"discount,omitempty"`
	URL           string    `json:"url,omitempty"`
	Source        string    `json:"source"`
	Images        []string  `json:"images"`
	Category      string    `json:"category,omitempty"`
	ValidUntil    string    `json:"valid_until,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
