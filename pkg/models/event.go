package models

import "time"

// RawEvent is one unnormalized record exactly as a source adapter
// fetched it. Field names and value shapes (string, list, nested map)
// vary per source; it only lives for the duration of one pipeline run.
type RawEvent map[string]any

// CanonicalEvent is the normalized, internal form of an event.
//
// All sources are mapped into this structure first, then we snapshot
// and write to the DB from this representation. Several fields are
// always null: they exist so the snapshot keeps the full unified
// schema that downstream consumers already expect.
type CanonicalEvent struct {
	ID              int      `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Date            *string  `json:"date"`
	Schedule        *string  `json:"schedule"`
	Region          string   `json:"region"`
	Category        string   `json:"category"`
	CategoryColor   string   `json:"categoryColor"`
	SubCategories   []string `json:"subCategories"`
	Location        string   `json:"location"`
	Venue           string   `json:"venue"`
	VenueURL        *string  `json:"venueUrl"`
	URL             string   `json:"url"`
	EventURL        string   `json:"eventUrl"`
	Image           *string  `json:"image"`
	ImageURL        *string  `json:"imageUrl"`
	Price           int      `json:"price"`
	MaxCapacity     int      `json:"maxCapacity"`
	TargetAges      *string  `json:"targetAges"`
	SpecialFeatures *string  `json:"specialFeatures"`
	Source          string   `json:"source"`

	// SourceKey is the adapter key the record came from (e.g.
	// "culture_gov"), kept separate from the display-formatted Source
	// so per-source counts stay exact. Not part of the snapshot.
	SourceKey string `json:"-"`
}

// EventDB is a persisted event row from the events table.
type EventDB struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Date        string         `json:"date,omitempty"`
	Location    string         `json:"location,omitempty"`
	Category    string         `json:"category,omitempty"`
	Price       string         `json:"price,omitempty"`
	URL         string         `json:"url,omitempty"`
	Source      string         `json:"source"`
	Images      []string       `json:"images"`
	Contact     string         `json:"contact,omitempty"`
	Content     map[string]any `json:"content,omitempty"`
	FullText    string         `json:"full_text,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
