// Package source defines the adapter boundary to the upstream feeds.
// Each adapter fetches raw, loosely-typed records for one origin; the
// normalizer owns turning them into the canonical schema.
package source

import (
	"context"
	"fmt"

	"eventhub/pkg/models"
)

// Options are per-run fetch knobs passed through from the trigger.
type Options struct {
	// Headless is forwarded to feed backends that drive a browser.
	// The JSON feed adapters send it as a query parameter.
	Headless bool
}

// Source is implemented by each upstream adapter. Fetch returns up to
// max raw records; it may fail, and a failing source must never take
// the rest of the run down with it (the orchestrator isolates it).
type Source interface {
	Key() string
	Fetch(ctx context.Context, max int, opts Options) ([]models.RawEvent, error)
}

// NewFromConfig builds one adapter from its config entry.
func NewFromConfig(c Entry) (Source, error) {
	switch c.Type {
	case "culture_gov", "visitgreece", "pigolampides", "more_events":
		return NewFeed(c.Type, c.BaseURL, c.Path, c.Timeout()), nil
	default:
		return nil, fmt.Errorf("unknown source type: %s", c.Type)
	}
}
