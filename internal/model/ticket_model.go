package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Ticket struct {
	Id                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Protocol          string         `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerId        uuid.UUID      `gorm:"type:uuid;not null;index"`
	SessionId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	IssueDescription  string         `gorm:"type:text;not null"`
	Type              string         `gorm:"type:varchar(16);not null"`
	Priority          string         `gorm:"type:varchar(16);not null;index"`
	Status            string         `gorm:"type:varchar(16);not null;index"`
	PrimaryTrigger    string         `gorm:"type:varchar(32);not null"`
	TriggerSet        datatypes.JSON `gorm:"type:jsonb"`
	AssignedHandler   string         `gorm:"type:varchar(64)"`
	ResolutionOutcome *string        `gorm:"type:text"`
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
	SLADeadline       time.Time      `gorm:"index"`
	ResolvedAt        *time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (Ticket) TableName() string {
	return "tickets"
}
