package scraper

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"eventhub/internal/normalizer"
	"eventhub/internal/source"
	"eventhub/pkg/models"
)

// ErrRunInProgress is returned when a run is requested while another
// one holds the single-flight guard.
var ErrRunInProgress = errors.New("scrape run already in progress")

// RunOptions are the per-run parameters exposed on the trigger
// surface.
type RunOptions struct {
	Headless           bool
	MaxEventsPerSource int
}

// Broadcaster receives run lifecycle events. Satisfied by the sync
// hub; may be nil.
type Broadcaster interface {
	BroadcastJSON(v any)
}

// Manager is the pipeline orchestrator: it runs every source adapter,
// isolates per-source failures, transforms the combined raw batches,
// snapshots the canonical batch, and dedup-persists it record by
// record.
type Manager struct {
	Store        Store
	Sources      []source.Source
	SnapshotPath string
	Hub          Broadcaster

	mu sync.Mutex // single-flight guard around RunAll
}

func NewManager(store Store, sources []source.Source, snapshotPath string) *Manager {
	return &Manager{
		Store:        store,
		Sources:      sources,
		SnapshotPath: snapshotPath,
	}
}

// RunAll executes one full pipeline run. At most one run is in flight
// at any time: a concurrent caller gets ErrRunInProgress instead of
// blocking. Source and record failures are absorbed (logged, counted
// by absence); only snapshot failure fails the run, and rows committed
// before it stand.
func (m *Manager) RunAll(ctx context.Context, opts RunOptions) (*models.RunResult, error) {
	if !m.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer m.mu.Unlock()

	return m.runLocked(ctx, opts)
}

// StartRun launches a run on its own goroutine. The guard is taken
// before returning, so the caller gets ErrRunInProgress synchronously
// when another run is in flight; the run's own outcome is only logged.
func (m *Manager) StartRun(ctx context.Context, opts RunOptions) error {
	if !m.mu.TryLock() {
		return ErrRunInProgress
	}

	go func() {
		defer m.mu.Unlock()
		result, err := m.runLocked(ctx, opts)
		if err != nil {
			log.Printf("[scraper] background run failed: %v", err)
			return
		}
		log.Printf("[scraper] background run %s finished: %d events", result.RunID, result.TotalEvents)
	}()
	return nil
}

// runLocked is the run body; the caller holds the single-flight guard.
func (m *Manager) runLocked(ctx context.Context, opts RunOptions) (*models.RunResult, error) {
	runID := uuid.NewString()
	startedAt := time.Now().UTC()
	m.broadcast(RunEvent{Type: RunStarted, RunID: runID, At: startedAt})

	log.Printf("[scraper] run %s: starting %d sources (max %d events each)", runID, len(m.Sources), opts.MaxEventsPerSource)

	batches := m.fetchAll(ctx, opts)

	tr := normalizer.NewTransformer()
	events := tr.TransformAll(batches)

	// Snapshot before touching storage, so a storage failure never
	// loses the transformed batch.
	if err := WriteSnapshot(m.SnapshotPath, events); err != nil {
		m.broadcast(RunEvent{Type: RunFailed, RunID: runID, Error: err.Error(), At: time.Now().UTC()})
		return nil, err
	}
	log.Printf("[scraper] run %s: snapshot written to %s", runID, m.SnapshotPath)

	saved := m.persist(ctx, events)

	result := &models.RunResult{
		RunID:        runID,
		TotalEvents:  saved,
		BySource:     tr.Counts(),
		SnapshotPath: m.SnapshotPath,
		StartedAt:    startedAt,
		FinishedAt:   time.Now().UTC(),
	}

	log.Printf("[scraper] run %s: complete, %d events saved, by source %v", runID, saved, result.BySource)
	m.broadcast(RunEvent{
		Type:        RunCompleted,
		RunID:       runID,
		TotalEvents: saved,
		BySource:    result.BySource,
		At:          result.FinishedAt,
	})
	return result, nil
}

// fetchAll calls every adapter in order. A failing adapter contributes
// an empty batch; one broken source must not kill the whole run.
func (m *Manager) fetchAll(ctx context.Context, opts RunOptions) []normalizer.SourceBatch {
	fetchOpts := source.Options{Headless: opts.Headless}

	batches := make([]normalizer.SourceBatch, 0, len(m.Sources))
	for _, src := range m.Sources {
		log.Printf("[scraper] fetching from %s", src.Key())
		raw, err := src.Fetch(ctx, opts.MaxEventsPerSource, fetchOpts)
		if err != nil {
			log.Printf("[scraper] source %s error: %v", src.Key(), err)
			// keep going: the source contributes an empty batch
			raw = nil
		}
		batches = append(batches, normalizer.SourceBatch{Key: src.Key(), Events: raw})
	}
	return batches
}

// persist writes events in sequence order with URL dedup. Each record
// commits on its own; a failure on one record is logged and the loop
// moves on.
func (m *Manager) persist(ctx context.Context, events []models.CanonicalEvent) int {
	saved := 0
	for _, ev := range events {
		if ev.URL != "" {
			exists, err := m.Store.ExistsByURL(ctx, ev.URL)
			if err != nil {
				log.Printf("[scraper] dedup check failed for %q: %v", ev.URL, err)
				continue
			}
			if exists {
				continue
			}
		}

		if err := m.Store.InsertEvent(ctx, ev); err != nil {
			log.Printf("[scraper] error saving event %q: %v", ev.URL, err)
			continue
		}
		saved++
	}
	return saved
}

func (m *Manager) broadcast(ev RunEvent) {
	if m.Hub != nil {
		m.Hub.BroadcastJSON(ev)
	}
}
