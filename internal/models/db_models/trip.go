package db_models

import (
	"math"
	"time"

	"github.com/lib/pq"
)

type Trip struct {
	BaseModel
	Name        string    `json:"name"`
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CreatorID   string    `gorm:"index" json:"creator_id"`

	// Member ids, and the subset of members allowed to edit without approval.
	Collaborators pq.StringArray `gorm:"type:text[]" json:"collaborators,omitempty"`
	Editors       pq.StringArray `gorm:"type:text[]" json:"editors,omitempty"`

	Budget     *Budget    `gorm:"serializer:json;type:jsonb" json:"budget,omitempty"`
	Activities []Activity `gorm:"foreignKey:TripID" json:"activities,omitempty"`
}

// DurationDays counts calendar days inclusively, so a trip that starts and
// ends on the same day lasts one day.
func (t *Trip) DurationDays() int {
	start := dateOnly(t.StartDate)
	end := dateOnly(t.EndDate)
	return int(math.Round(end.Sub(start).Hours()/24)) + 1
}

func (t *Trip) HasValidDates() bool {
	return !dateOnly(t.EndDate).Before(dateOnly(t.StartDate))
}

// CombinedLabel is the "<name> - <destination>" label the mobile client
// writes into expense descriptions.
func (t *Trip) CombinedLabel() string {
	if t.Destination == "" {
		return t.Name
	}
	return t.Name + " - " + t.Destination
}

func (t *Trip) IsOwner(userID string) bool {
	return userID != "" && t.CreatorID == userID
}

func (t *Trip) IsEditor(userID string) bool {
	return t.IsOwner(userID) || containsString(t.Editors, userID)
}

func (t *Trip) IsMember(userID string) bool {
	return t.IsEditor(userID) || containsString(t.Collaborators, userID)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
