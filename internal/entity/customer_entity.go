package entity

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the minimal registry entry this core needs: identity plus the
// VIP flag consumed by the escalation trigger evaluation.
type Customer struct {
	Id        uuid.UUID
	Name      string
	Email     string
	Vip       bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}
