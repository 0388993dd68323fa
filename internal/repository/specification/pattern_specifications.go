package specification

import (
	"gorm.io/gorm"
)

type ByPrimaryTrigger struct {
	Trigger string
}

func (s ByPrimaryTrigger) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("primary_trigger = ?", s.Trigger)
}

// ByFrustrationLevel filters on the frustration level inside the snapshot
// jsonb column.
type ByFrustrationLevel struct {
	Level int
}

func (s ByFrustrationLevel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("(context_snapshot->>'frustration_level')::int = ?", s.Level)
}
