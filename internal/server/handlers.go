// ABOUTME: Route handlers for runs, moods, recents, and health.
// ABOUTME: Each handler decodes, calls the tracker service, and encodes.
package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harperreed/moodrun/internal/tracker"
)

type handlers struct {
	svc    *tracker.Service
	logger *zap.Logger
}

func (h *handlers) hello(c *gin.Context) {
	c.JSON(http.StatusOK, messageBody{Message: "Hello from backend!"})
}

func (h *handlers) health(c *gin.Context) {
	if err := h.svc.Ping(c.Request.Context()); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, errorBody{Error: "Store unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) recents(c *gin.Context) {
	rec, err := h.svc.Recents(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, recentsJSON{
		LatestRun:  toRunJSON(rec.LatestRun),
		LatestMood: toMoodJSON(rec.LatestMood),
	})
}

func (h *handlers) listRuns(c *gin.Context) {
	runs, err := h.svc.ListRuns(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": toRunList(runs)})
}

func (h *handlers) createRun(c *gin.Context) {
	var in tracker.RunInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}

	r, err := h.svc.CreateRun(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Run added successfully",
		"run":     toRunJSON(r),
	})
}

func (h *handlers) getRun(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	r, err := h.svc.GetRun(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"run": toRunJSON(r)})
}

func (h *handlers) deleteRun(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteRun(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, messageBody{Message: "Run deleted successfully"})
}

func (h *handlers) listMoods(c *gin.Context) {
	moods, err := h.svc.ListMoods(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"moods": toMoodList(moods)})
}

func (h *handlers) createMood(c *gin.Context) {
	var in tracker.MoodInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}

	m, err := h.svc.CreateMood(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Mood added successfully",
		"mood":    toMoodJSON(m),
	})
}

func (h *handlers) getMood(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	m, err := h.svc.GetMood(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mood": toMoodJSON(m)})
}

func (h *handlers) deleteMood(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteMood(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, messageBody{Message: "Mood deleted successfully"})
}

// pathID parses the :id parameter, writing a 400 when it is not an integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: msgInvalidID})
		return 0, false
	}
	return id, true
}
