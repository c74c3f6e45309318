package models

import (
	"time"

	"gorm.io/datatypes"
)

// ReloadAudit records one completed reload cycle for the /reloads history.
type ReloadAudit struct {
	ID                   string         `gorm:"column:id;primaryKey;size:36" json:"id"`
	StartedAt            time.Time      `gorm:"column:started_at" json:"started_at"`
	DurationMS           int64          `gorm:"column:duration_ms" json:"duration_ms"`
	TotalAssessments     int            `gorm:"column:total_assessments" json:"total_assessments"`
	RowsTrained          int            `gorm:"column:rows_trained" json:"rows_trained"`
	FeatureWidth         int            `gorm:"column:feature_width" json:"feature_width"`
	AverageAssessedValue float64        `gorm:"column:average_assessedvalue" json:"average_assessedvalue"`
	TopConditions        datatypes.JSON `gorm:"column:top_conditions" json:"top_conditions"`
}

func (ReloadAudit) TableName() string { return "reload_audits" }
