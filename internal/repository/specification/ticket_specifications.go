package specification

import (
	"time"

	"gorm.io/gorm"
)

type ByProtocol struct {
	Protocol string
}

func (s ByProtocol) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("protocol = ?", s.Protocol)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByStatusIn struct {
	Statuses []string
}

func (s ByStatusIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", s.Statuses)
}

type ByPriority struct {
	Priority string
}

func (s ByPriority) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("priority = ?", s.Priority)
}

// SLAExpired matches tickets whose deadline passed before the given instant.
// Combine with ByStatusIn to restrict to still-active tickets.
type SLAExpired struct {
	Now time.Time
}

func (s SLAExpired) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sla_deadline < ?", s.Now)
}

type CreatedBetween struct {
	From time.Time
	To   time.Time
}

func (s CreatedBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at BETWEEN ? AND ?", s.From, s.To)
}
