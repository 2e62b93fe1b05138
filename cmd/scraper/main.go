package main

import (
	"context"
	"log"
	"time"

	"eventhub/internal/scraper"
	"eventhub/internal/source"
	"eventhub/pkg/database"
	"eventhub/pkg/utils"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	// Ensure schema exists
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	cfg := utils.LoadScraperConfig()

	srcCfg, err := source.Load(cfg.SourcesPath)
	if err != nil {
		log.Fatalf("load sources config: %v", err)
	}
	sources, err := source.BuildAll(srcCfg)
	if err != nil {
		log.Fatalf("build sources: %v", err)
	}

	manager := scraper.NewManager(scraper.NewSQLStore(db), sources, cfg.SnapshotPath)

	result, err := manager.RunAll(ctx, scraper.RunOptions{
		Headless:           cfg.Headless,
		MaxEventsPerSource: cfg.MaxEvents,
	})
	if err != nil {
		log.Fatalf("run failed: %v", err)
	}

	log.Printf("run %s finished: %d events total", result.RunID, result.TotalEvents)
	for src, n := range result.BySource {
		log.Printf("  %s: %d", src, n)
	}
	log.Printf("snapshot written to %s", result.SnapshotPath)
}
