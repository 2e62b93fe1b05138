package scheduler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler exposes the scheduler over HTTP. Status is public; start and
// stop are expected to sit behind auth middleware.
type Handler struct {
	Sched *Scheduler
	Cfg   Config
}

func NewHandler(s *Scheduler, cfg Config) *Handler {
	return &Handler{Sched: s, Cfg: cfg}
}

func (h *Handler) StatusRoute(c *gin.Context) {
	c.JSON(http.StatusOK, h.Sched.Status())
}

func (h *Handler) StartRoute(c *gin.Context) {
	if err := h.Sched.Start(h.Cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.Sched.Status())
}

func (h *Handler) StopRoute(c *gin.Context) {
	h.Sched.Stop()
	c.JSON(http.StatusOK, h.Sched.Status())
}
