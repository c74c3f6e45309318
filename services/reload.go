package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"assessment-prediction-api/dataset"
	"assessment-prediction-api/logger"
	"assessment-prediction-api/metrics"
	"assessment-prediction-api/models"
	"assessment-prediction-api/regression"
)

// summaryCacheTTL bounds how long a cached summary can outlive its reload.
const summaryCacheTTL = 24 * time.Hour

// ReloadService rebuilds the dataset snapshot and the model from the open
// data portal. Reloads are serialized; readers keep the previous model until
// the swap at the end of a successful run.
type ReloadService struct {
	mu      sync.Mutex
	fetcher *dataset.Fetcher
	store   *AssessmentStore
	state   *ModelState
	cache   *CacheService
}

func NewReloadService(fetcher *dataset.Fetcher, store *AssessmentStore, state *ModelState, cache *CacheService) *ReloadService {
	return &ReloadService{fetcher: fetcher, store: store, state: state, cache: cache}
}

// Reload runs one fetch, train, store cycle and returns the dataset summary.
// Fetch and parse failures keep dataset.ErrUpstream in the chain so handlers
// can answer with a gateway error; everything later is an internal error.
func (s *ReloadService) Reload(ctx context.Context) (dataset.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := time.Now()

	records, err := s.fetcher.Fetch(ctx)
	if err != nil {
		metrics.ReloadFailures.Inc()
		return dataset.Summary{}, err
	}
	complete := dataset.DropIncomplete(records)
	rows := dataset.ToAssessments(complete)
	logger.Info("dataset fetched",
		zap.Int("rows_raw", len(records)),
		zap.Int("rows_complete", len(rows)))

	trainingSet, encoder, err := regression.Preprocess(complete)
	if err != nil {
		metrics.ReloadFailures.Inc()
		return dataset.Summary{}, fmt.Errorf("preprocessing dataset: %w", err)
	}
	model, err := regression.Train(trainingSet)
	if err != nil {
		metrics.ReloadFailures.Inc()
		return dataset.Summary{}, fmt.Errorf("training model: %w", err)
	}

	// Training succeeded, so the table rewrite and the state swap stay
	// consistent with each other even if one of them fails below.
	if err := s.store.ReplaceAll(ctx, rows); err != nil {
		metrics.ReloadFailures.Inc()
		return dataset.Summary{}, fmt.Errorf("storing assessments: %w", err)
	}

	summary := dataset.Summarize(rows)
	s.state.Set(model, encoder, summary)

	duration := time.Since(started)
	metrics.ReloadsTotal.Inc()
	metrics.ReloadDuration.Observe(duration.Seconds())
	metrics.DatasetRows.Set(float64(len(rows)))

	s.audit(ctx, started, duration, summary, len(trainingSet.Target), model.Width())
	go s.broadcast(summary)

	logger.Info("reload complete",
		zap.Int("total_assessments", summary.TotalAssessments),
		zap.Int("feature_width", model.Width()),
		zap.Duration("duration", duration))
	return summary, nil
}

// audit records the reload in the history table. Failures are logged and
// swallowed; the reload itself already succeeded.
func (s *ReloadService) audit(ctx context.Context, started time.Time, duration time.Duration, summary dataset.Summary, rowsTrained, featureWidth int) {
	top, err := json.Marshal(summary.TopConditions)
	if err != nil {
		top = []byte("{}")
	}
	audit := &models.ReloadAudit{
		ID:                   uuid.NewString(),
		StartedAt:            started.UTC(),
		DurationMS:           duration.Milliseconds(),
		TotalAssessments:     summary.TotalAssessments,
		RowsTrained:          rowsTrained,
		FeatureWidth:         featureWidth,
		AverageAssessedValue: summary.AverageAssessedValue,
		TopConditions:        datatypes.JSON(top),
	}
	if err := s.store.RecordReload(ctx, audit); err != nil {
		logger.Warn("recording reload audit failed", zap.Error(err))
	}
}

// broadcast caches the fresh summary and notifies subscribers, best effort.
func (s *ReloadService) broadcast(summary dataset.Summary) {
	if !s.cache.Available() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.cache.Set(ctx, SummaryCacheKey, summary, summaryCacheTTL); err != nil {
		logger.Warn("caching summary failed", zap.Error(err))
	}
	if err := s.cache.Publish(ctx, ReloadChannel, summary); err != nil {
		logger.Warn("publishing reload event failed", zap.Error(err))
	}
}
