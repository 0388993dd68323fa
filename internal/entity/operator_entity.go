package entity

import (
	"time"

	"github.com/google/uuid"
)

// Operator is an authenticated user of the ops/diagnostics API.
type Operator struct {
	Id           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         string // "operator" | "admin"
	CreatedAt    time.Time
}
