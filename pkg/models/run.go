package models

import "time"

// RunResult aggregates one pipeline run. It is returned to the caller
// (API trigger or scheduler) and not persisted beyond the snapshot
// file and the DB rows it reflects.
type RunResult struct {
	RunID        string         `json:"run_id"`
	TotalEvents  int            `json:"total_events"`
	BySource     map[string]int `json:"by_source"`
	SnapshotPath string         `json:"combined_json_path"`
	StartedAt    time.Time      `json:"started_at"`
	FinishedAt   time.Time      `json:"finished_at"`
}
