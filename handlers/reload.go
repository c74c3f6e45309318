package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"assessment-prediction-api/dataset"
	"assessment-prediction-api/logger"
	"assessment-prediction-api/services"
)

type ReloadHandler struct {
	svc *services.ReloadService
}

func NewReloadHandler(svc *services.ReloadService) *ReloadHandler {
	return &ReloadHandler{svc: svc}
}

// Reload serves POST /reload: it refreshes the dataset snapshot, retrains
// the model, and returns the dataset summary.
func (h *ReloadHandler) Reload(c *gin.Context) {
	summary, err := h.svc.Reload(c.Request.Context())
	if err != nil {
		if errors.Is(err, dataset.ErrUpstream) {
			logger.Warn("reload failed upstream", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch data: " + err.Error()})
			return
		}
		logger.Error("reload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process data: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}
