package scraper

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler exposes the run trigger surface: background run, blocking
// run, and the latest combined snapshot.
type Handler struct {
	Manager  *Manager
	Defaults RunOptions
}

func NewHandler(m *Manager, defaults RunOptions) *Handler {
	return &Handler{Manager: m, Defaults: defaults}
}

// RegisterRoutes mounts the trigger endpoints; rg is expected to carry
// auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.runBackground) // POST /scrape
	rg.POST("/sync", h.runSync)  // POST /scrape/sync
}

func (h *Handler) runBackground(c *gin.Context) {
	opts := h.parseOptions(c)

	if err := h.Manager.StartRun(context.Background(), opts); err != nil {
		if errors.Is(err, ErrRunInProgress) {
			c.JSON(http.StatusConflict, gin.H{"status": "busy", "message": "a run is already in progress"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "failed", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "started",
		"message": "Scraping started in background. Check /stats for updates.",
	})
}

func (h *Handler) runSync(c *gin.Context) {
	opts := h.parseOptions(c)

	result, err := h.Manager.RunAll(c.Request.Context(), opts)
	if err != nil {
		if errors.Is(err, ErrRunInProgress) {
			c.JSON(http.StatusConflict, gin.H{"status": "busy", "message": "a run is already in progress"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "failed", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "completed",
		"message": "Scraping completed successfully",
		"results": result,
	})
}

// CombinedEvents serves the latest snapshot file as-is.
func (h *Handler) CombinedEvents(c *gin.Context) {
	b, err := os.ReadFile(h.Manager.SnapshotPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "combined events file not found, run scrapers first"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error reading combined events"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", b)
}

func (h *Handler) parseOptions(c *gin.Context) RunOptions {
	opts := h.Defaults

	if v := c.Query("headless"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.Headless = b
		}
	}
	if v := c.Query("max_events"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 500 {
			opts.MaxEventsPerSource = n
		}
	}
	return opts
}
