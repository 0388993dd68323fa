package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Operator struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string         `gorm:"type:text;not null;uniqueIndex"`
	Name         string         `gorm:"type:text;not null"`
	PasswordHash string         `gorm:"type:text;not null"`
	Role         string         `gorm:"type:varchar(16);not null;default:'operator'"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Operator) TableName() string {
	return "operators"
}
