package db_models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ActivityType string

const (
	ActivityTypeFlight     ActivityType = "flight"
	ActivityTypeLodging    ActivityType = "lodging"
	ActivityTypeRestaurant ActivityType = "restaurant"
	ActivityTypeTour       ActivityType = "tour"
	ActivityTypeActivity   ActivityType = "activity"
	ActivityTypeTransport  ActivityType = "transportation"
	ActivityTypeShopping   ActivityType = "shopping"
)

// ParseActivityType maps the backend's free-form type strings onto the
// known enum. Anything unrecognised becomes a generic activity.
func ParseActivityType(raw string) ActivityType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "restaurant", "dining", "food":
		return ActivityTypeRestaurant
	case "lodging", "hotel", "accommodation":
		return ActivityTypeLodging
	case "flight":
		return ActivityTypeFlight
	case "tour", "sightseeing":
		return ActivityTypeTour
	default:
		return ActivityTypeActivity
	}
}

type ActivityStatus string

const (
	ActivityStatusPlanned   ActivityStatus = "planned"
	ActivityStatusConfirmed ActivityStatus = "confirmed"
	ActivityStatusCompleted ActivityStatus = "completed"
	ActivityStatusCancelled ActivityStatus = "cancelled"
)

type ActivityPriority string

const (
	PriorityLow    ActivityPriority = "low"
	PriorityMedium ActivityPriority = "medium"
	PriorityHigh   ActivityPriority = "high"
)

type Activity struct {
	BaseModel
	TripID       uuid.UUID        `gorm:"type:uuid;index" json:"trip_id"`
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	ActivityType ActivityType     `json:"activity_type"`
	Status       ActivityStatus   `json:"status"`
	Priority     ActivityPriority `json:"priority"`
	StartDate    *time.Time       `json:"start_date,omitempty"`
	EndDate      *time.Time       `json:"end_date,omitempty"`
	Location     *Location        `gorm:"serializer:json;type:jsonb" json:"location,omitempty"`
	Budget       *Budget          `gorm:"serializer:json;type:jsonb" json:"budget,omitempty"`
	CheckedIn    bool             `json:"checked_in"`
}

// Location coordinates stay nil when the source did not provide usable values.
type Location struct {
	Name      string   `json:"name,omitempty"`
	Address   string   `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}
