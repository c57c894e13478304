package request_models

type BudgetInput struct {
	EstimatedCost float64  `json:"estimated_cost" binding:"gte=0"`
	ActualCost    *float64 `json:"actual_cost,omitempty"`
	Currency      string   `json:"currency"`
}

type CreateTripRequest struct {
	Name        string `json:"name" binding:"required"`
	Destination string `json:"destination" binding:"required"`
	// YYYY-MM-DD or RFC3339
	StartDate     string       `json:"start_date" binding:"required"`
	EndDate       string       `json:"end_date" binding:"required"`
	Budget        *BudgetInput `json:"budget,omitempty"`
	Collaborators []string     `json:"collaborators,omitempty"`
}

type CreateExpenseRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	// YYYY-MM-DD or RFC3339, defaults to now
	Date       string `json:"date"`
	Currency   string `json:"currency"`
	ActivityID string `json:"activity_id,omitempty"`
}

// RecordExpenseRequest is an expense not scoped by URL. Without trip_id it is
// stored loose and attributed by the budget rules.
type RecordExpenseRequest struct {
	CreateExpenseRequest
	TripID string `json:"trip_id,omitempty"`
}

type CheckInRequest struct {
	CheckedIn bool `json:"checked_in"`
}

type CreateEditRequestRequest struct {
	ActivityID string         `json:"activity_id,omitempty"`
	Kind       string         `json:"kind" binding:"required,oneof=activity_edit permission_change"`
	Changes    map[string]any `json:"changes"`
}
