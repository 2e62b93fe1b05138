package scraper

import "time"

// Run lifecycle event types pushed to connected websocket clients.
const (
	RunStarted   = "run.started"
	RunCompleted = "run.completed"
	RunFailed    = "run.failed"
)

type RunEvent struct {
	Type        string         `json:"type"`
	RunID       string         `json:"run_id"`
	TotalEvents int            `json:"total_events,omitempty"`
	BySource    map[string]int `json:"by_source,omitempty"`
	Error       string         `json:"error,omitempty"`
	At          time.Time      `json:"at"`
}
