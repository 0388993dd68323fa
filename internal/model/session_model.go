package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Session struct {
	Id                 uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	InteractionCount   int            `gorm:"not null;default:0"`
	FrustrationLevel   int            `gorm:"not null;default:0"`
	FailedAttemptCount int            `gorm:"not null;default:0"`
	EscalationState    string         `gorm:"type:varchar(16);not null;default:'none'"`
	LastRoutedDomain   string         `gorm:"type:varchar(64)"`
	ClarificationAsked bool           `gorm:"not null;default:false"`
	ActiveProtocol     string         `gorm:"type:varchar(32);index"`
	CreatedAt          time.Time      `gorm:"autoCreateTime"`
	LastActivityAt     time.Time      `gorm:"index"`
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (Session) TableName() string {
	return "sessions"
}
