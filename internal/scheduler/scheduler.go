// Package scheduler owns the recurring pipeline trigger. One instance
// is constructed by the composition root and handed to whoever exposes
// start/stop/status; there is no package-level singleton.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// RunFunc executes one pipeline run. ErrRunInProgress-style errors are
// logged, not propagated: a missed tick is not a scheduler failure.
type RunFunc func(ctx context.Context) error

// Config selects the cadence. Unknown schedules fall back to daily.
type Config struct {
	Schedule     string // hourly | every_6_hours | every_12_hours | twice_daily | daily
	RunOnStartup bool
}

type JobStatus struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	NextRun *time.Time `json:"next_run"`
}

type Status struct {
	Running bool        `json:"running"`
	Jobs    []JobStatus `json:"jobs"`
}

// Scheduler runs the pipeline on a recurring cron trigger. Exactly one
// trigger is registered while running; ticks are wrapped so a new tick
// is skipped while a previous one is still executing.
type Scheduler struct {
	run RunFunc

	mu      sync.Mutex
	cron    *cron.Cron
	entryID cron.EntryID
	jobID   string
	jobName string
	running bool
}

func New(run RunFunc) *Scheduler {
	return &Scheduler{run: run}
}

// Start registers the recurring trigger and begins ticking. Calling it
// while already running is a logged no-op.
func (s *Scheduler) Start(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		log.Printf("[scheduler] already running")
		return nil
	}

	spec, jobID, jobName := cadence(cfg.Schedule)

	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.PrintfLogger(log.Default())),
	))

	id, err := c.AddFunc(spec, s.tick)
	if err != nil {
		return err
	}

	// Run immediately on startup if configured, before the first
	// scheduled tick.
	if cfg.RunOnStartup {
		log.Printf("[scheduler] running initial scrape on startup")
		s.tick()
	}

	c.Start()

	s.cron = c
	s.entryID = id
	s.jobID = jobID
	s.jobName = jobName
	s.running = true
	log.Printf("[scheduler] started: %s (%s)", jobName, spec)
	return nil
}

// Stop cancels the recurring trigger. Stopping a stopped scheduler is
// a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cron.Stop()
	s.cron = nil
	s.running = false
	log.Printf("[scheduler] stopped")
}

func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return Status{Running: false, Jobs: []JobStatus{}}
	}

	job := JobStatus{ID: s.jobID, Name: s.jobName}
	if next := s.cron.Entry(s.entryID).Next; !next.IsZero() {
		job.NextRun = &next
	}
	return Status{Running: true, Jobs: []JobStatus{job}}
}

func (s *Scheduler) tick() {
	log.Printf("[scheduler] starting scheduled scraping job")
	if err := s.run(context.Background()); err != nil {
		log.Printf("[scheduler] scraping job failed: %v", err)
		return
	}
	log.Printf("[scheduler] scraping job completed")
}

// cadence maps a schedule name to its cron spec, job id and display
// name. Unknown names get the daily default (02:00).
func cadence(schedule string) (spec, jobID, jobName string) {
	switch schedule {
	case "hourly":
		return "0 * * * *", "scraper_hourly", "Hourly Scraper"
	case "every_6_hours":
		return "0 */6 * * *", "scraper_6h", "6-Hour Scraper"
	case "every_12_hours":
		return "0 */12 * * *", "scraper_12h", "12-Hour Scraper"
	case "twice_daily":
		return "0 6,18 * * *", "scraper_twice", "Twice Daily Scraper"
	default:
		return "0 2 * * *", "scraper_daily", "Daily Scraper"
	}
}
