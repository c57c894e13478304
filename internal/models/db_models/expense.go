package db_models

import (
	"time"

	"github.com/google/uuid"
)

// Expense is recorded independently of trips. TripID and ActivityID are
// loose back-references and may be missing or stale.
type Expense struct {
	BaseModel
	UserID      string     `gorm:"index" json:"user_id"`
	TripID      *uuid.UUID `gorm:"type:uuid;index" json:"trip_id,omitempty"`
	ActivityID  *uuid.UUID `gorm:"type:uuid" json:"activity_id,omitempty"`
	Amount      float64    `json:"amount"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Date        time.Time  `gorm:"index" json:"date"`
	Currency    string     `gorm:"size:3" json:"currency"`
}
