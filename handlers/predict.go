package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"assessment-prediction-api/logger"
	"assessment-prediction-api/metrics"
	"assessment-prediction-api/regression"
	"assessment-prediction-api/services"
)

// validConditions are the condition labels a request may carry, matching the
// values the Cambridge dataset uses.
var validConditions = []string{
	"Average", "Excellent", "Fair", "Good", "Poor", "Superior", "Very Good",
}

const (
	msgModelNotLoaded  = "Model not loaded. Please call the '/reload' endpoint first."
	msgMissingParams   = "Missing or invalid required parameters"
	msgInvalidNumerics = "Invalid numeric values for interior_bedrooms, interior_fullbaths, or interior_halfbaths"
)

// predictRequest keeps every field loosely typed so validation can tell a
// missing field from a wrongly typed one.
type predictRequest struct {
	Bedrooms  interface{} `json:"interior_bedrooms"`
	FullBaths interface{} `json:"interior_fullbaths"`
	HalfBaths interface{} `json:"interior_halfbaths"`
	Condition interface{} `json:"condition_overallcondition"`
}

type PredictHandler struct {
	state *services.ModelState
}

func NewPredictHandler(state *services.ModelState) *PredictHandler {
	return &PredictHandler{state: state}
}

// Predict serves POST /predict.
func (h *PredictHandler) Predict(c *gin.Context) {
	model, encoder, ok := h.state.Get()
	if !ok {
		metrics.PredictionFailures.Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": msgModelNotLoaded})
		return
	}

	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.PredictionFailures.Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingParams})
		return
	}

	bedrooms := toNumber(req.Bedrooms)
	fullBaths := toNumber(req.FullBaths)
	halfBaths := toNumber(req.HalfBaths)

	condition, ok := req.Condition.(string)
	if !ok {
		metrics.PredictionFailures.Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingParams})
		return
	}
	if !isValidCondition(condition) {
		metrics.PredictionFailures.Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid condition_overallcondition. Please choose one of the following: " + strings.Join(validConditions, ", "),
		})
		return
	}

	if math.IsNaN(bedrooms) || math.IsNaN(fullBaths) || math.IsNaN(halfBaths) {
		metrics.PredictionFailures.Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidNumerics})
		return
	}

	indicators, err := encoder.Transform(condition)
	if err != nil {
		metrics.PredictionFailures.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	features := regression.FeatureVector(bedrooms, fullBaths, halfBaths, indicators)
	predicted, err := model.Predict(features)
	if err != nil {
		metrics.PredictionFailures.Inc()
		logger.Error("prediction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.PredictionsTotal.Inc()
	c.JSON(http.StatusOK, gin.H{"predicted_assessedvalue": predicted})
}

// toNumber coerces a JSON value into a float64, yielding NaN for anything
// that is not a number or a numeric string.
func toNumber(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func isValidCondition(condition string) bool {
	for _, v := range validConditions {
		if condition == v {
			return true
		}
	}
	return false
}
