package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"assessment-prediction-api/dataset"
	"assessment-prediction-api/logger"
	"assessment-prediction-api/services"
)

type SummaryHandler struct {
	state *services.ModelState
	store *services.AssessmentStore
	cache *services.CacheService
}

func NewSummaryHandler(state *services.ModelState, store *services.AssessmentStore, cache *services.CacheService) *SummaryHandler {
	return &SummaryHandler{state: state, store: store, cache: cache}
}

// GetSummary serves GET /summary: the dataset summary of the last successful
// reload. When this instance has not reloaded yet, it falls back to the
// summary another instance may have cached.
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	if summary, ok := h.state.Summary(); ok {
		c.JSON(http.StatusOK, summary)
		return
	}

	var cached dataset.Summary
	found, err := h.cache.Get(c.Request.Context(), services.SummaryCacheKey, &cached)
	if err != nil {
		logger.Warn("reading cached summary failed", zap.Error(err))
	}
	if err == nil && found {
		c.JSON(http.StatusOK, cached)
		return
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "No data loaded. Please call the '/reload' endpoint first."})
}

// GetReloads serves GET /reloads: the reload audit history, newest first,
// with cursor pagination over started_at.
func (h *SummaryHandler) GetReloads(c *gin.Context) {
	p := ParsePagination(c)

	audits, err := h.store.RecentReloads(c.Request.Context(), p.Limit+1, p.Before)
	if err != nil {
		logger.Error("listing reloads failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reloads"})
		return
	}

	hasMore := len(audits) > p.Limit
	if hasMore {
		audits = audits[:p.Limit]
	}
	var nextCursor string
	if hasMore && len(audits) > 0 {
		nextCursor = audits[len(audits)-1].StartedAt.Format(time.RFC3339Nano)
	}

	c.JSON(http.StatusOK, CursorResponse{
		Data:       audits,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	})
}
