package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"assessment-prediction-api/logger"
	"assessment-prediction-api/services"
)

type HealthHandler struct {
	state *services.ModelState
	store *services.AssessmentStore
}

func NewHealthHandler(state *services.ModelState, store *services.AssessmentStore) *HealthHandler {
	return &HealthHandler{state: state, store: store}
}

// Health serves GET /health with liveness plus whether a model is loaded
// and how many assessment rows are persisted.
func (h *HealthHandler) Health(c *gin.Context) {
	count, err := h.store.Count(c.Request.Context())
	if err != nil {
		logger.Warn("health check could not count assessments", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"error":  "database unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "UP",
		"model_loaded": h.state.Loaded(),
		"assessments":  count,
	})
}
