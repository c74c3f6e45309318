package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"assessment-prediction-api/models"
)

// assessmentBatchSize bounds insert statement size during a reload rewrite.
const assessmentBatchSize = 500

// AssessmentStore persists dataset rows and reload audits.
type AssessmentStore struct {
	db *gorm.DB
}

func NewAssessmentStore(db *gorm.DB) *AssessmentStore {
	return &AssessmentStore{db: db}
}

// ReplaceAll swaps the assessments table for rows inside one transaction, so
// readers never observe a half-written snapshot.
func (s *AssessmentStore) ReplaceAll(ctx context.Context, rows []models.Assessment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Assessment{}).Error; err != nil {
			return fmt.Errorf("clearing assessments: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, assessmentBatchSize).Error; err != nil {
			return fmt.Errorf("inserting assessments: %w", err)
		}
		return nil
	})
}

// Count returns the number of persisted assessments.
func (s *AssessmentStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Assessment{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// RecordReload appends one reload audit row.
func (s *AssessmentStore) RecordReload(ctx context.Context, audit *models.ReloadAudit) error {
	return s.db.WithContext(ctx).Create(audit).Error
}

// RecentReloads returns up to limit audit rows, newest first. A non-nil
// before restricts results to reloads started strictly earlier, which is how
// cursor pagination walks the history.
func (s *AssessmentStore) RecentReloads(ctx context.Context, limit int, before *time.Time) ([]models.ReloadAudit, error) {
	q := s.db.WithContext(ctx).Order("started_at DESC").Limit(limit)
	if before != nil {
		q = q.Where("started_at < ?", *before)
	}
	var audits []models.ReloadAudit
	err := q.Find(&audits).Error
	return audits, err
}
