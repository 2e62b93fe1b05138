package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"eventhub/internal/auth"
	"eventhub/internal/deals"
	"eventhub/internal/events"
	"eventhub/internal/scheduler"
	"eventhub/internal/scraper"
	"eventhub/internal/source"
	synchub "eventhub/internal/sync"
	"eventhub/pkg/database"
	"eventhub/pkg/utils"
)

func main() {
	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	scrapeCfg := utils.LoadScraperConfig()

	srcCfg, err := source.Load(scrapeCfg.SourcesPath)
	if err != nil {
		log.Fatalf("load sources config: %v", err)
	}
	sources, err := source.BuildAll(srcCfg)
	if err != nil {
		log.Fatalf("build sources: %v", err)
	}

	hub := synchub.NewHub()

	manager := scraper.NewManager(scraper.NewSQLStore(db), sources, scrapeCfg.SnapshotPath)
	manager.Hub = hub

	defaults := scraper.RunOptions{
		Headless:           scrapeCfg.Headless,
		MaxEventsPerSource: scrapeCfg.MaxEvents,
	}

	sched := scheduler.New(func(ctx context.Context) error {
		_, err := manager.RunAll(ctx, defaults)
		return err
	})
	schedCfg := scheduler.Config{
		Schedule:     scrapeCfg.Schedule,
		RunOnStartup: scrapeCfg.RunOnStartup,
	}
	if err := sched.Start(schedCfg); err != nil {
		log.Fatalf("scheduler start failed: %v", err)
	}

	router := gin.Default()

	// Optional: avoid “trusted all proxies” warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/ws", synchub.WSHandler(hub))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "EventHub API",
			"version": "1.0",
			"endpoints": []string{
				"/events", "/deals", "/combined-events",
				"/scrape", "/scheduler/status", "/stats", "/ws",
			},
		})
	})

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "degraded",
				"db_error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Path})
	})

	// Events and deals (public, read-only)
	eventRepo := events.NewRepo(db)
	events.NewHandler(eventRepo).RegisterRoutes(router.Group("/events"))

	dealRepo := deals.NewRepo(db)
	deals.NewHandler(dealRepo).RegisterRoutes(router.Group("/deals"))

	router.GET("/stats", func(c *gin.Context) {
		ctx := c.Request.Context()

		totalEvents, err := eventRepo.Count(ctx, events.ListQuery{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		bySource, err := eventRepo.CountBy(ctx, "source")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		byCategory, err := eventRepo.CountBy(ctx, "category")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		totalDeals, err := dealRepo.Count(ctx, deals.ListQuery{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_events": totalEvents,
			"total_deals":  totalDeals,
			"by_source":    bySource,
			"by_category":  byCategory,
			"ws_clients":   hub.Stats().WSClients,
		})
	})

	// Auth
	authCfg := utils.LoadAuthConfig()
	tokenSvc := auth.TokenService{
		Secret:   []byte(authCfg.JWTSecret),
		Issuer:   authCfg.JWTIssuer,
		Duration: authCfg.JWTDuration,
	}
	auth.NewHandler(tokenSvc, authCfg.AdminPassword).RegisterRoutes(router.Group("/auth"))

	// Pipeline trigger and snapshot
	scrapeHandler := scraper.NewHandler(manager, defaults)
	router.GET("/combined-events", scrapeHandler.CombinedEvents)

	scrape := router.Group("/scrape")
	scrape.Use(auth.AuthMiddleware(tokenSvc))
	scrapeHandler.RegisterRoutes(scrape)

	// Scheduler: status is public, start/stop are admin-only
	schedHandler := scheduler.NewHandler(sched, schedCfg)
	router.GET("/scheduler/status", schedHandler.StatusRoute)

	schedAdmin := router.Group("/scheduler")
	schedAdmin.Use(auth.AuthMiddleware(tokenSvc))
	schedAdmin.POST("/start", schedHandler.StartRoute)
	schedAdmin.POST("/stop", schedHandler.StopRoute)

	httpSrv := &http.Server{
		Addr:    ":8080",
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Println("HTTP API server listening on :8080")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down")
	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	log.Println("server stopped")
}
