package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PatternRecord rows are append-only; there is no soft delete here because
// records are immutable history.
type PatternRecord struct {
	Id                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ContextSnapshot   datatypes.JSON `gorm:"type:jsonb;not null"`
	PrimaryTrigger    string         `gorm:"type:varchar(32);not null;index"`
	TriggerSet        datatypes.JSON `gorm:"type:jsonb"`
	TargetHandler     string         `gorm:"type:varchar(64);not null"`
	Outcome           string         `gorm:"type:varchar(16);not null"`
	ResolutionTimeMs  int64          `gorm:"not null;default:0"`
	SatisfactionScore *int
	CreatedAt         time.Time `gorm:"autoCreateTime;index"`
}

func (PatternRecord) TableName() string {
	return "pattern_records"
}
