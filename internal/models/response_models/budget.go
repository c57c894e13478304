package response_models

type BudgetStatus string

const (
	BudgetUnder    BudgetStatus = "Under Budget"
	BudgetOnTrack  BudgetStatus = "On Track"
	BudgetWarning  BudgetStatus = "Warning"
	BudgetCritical BudgetStatus = "Critical"
	BudgetOver     BudgetStatus = "Over Budget"
)

// MatchRule records why an expense was attributed to a trip.
type MatchRule string

const (
	MatchByTripID    MatchRule = "trip_id"
	MatchByTripToken MatchRule = "description_token"
	MatchByDateRange MatchRule = "date_range"
)

type MatchedExpense struct {
	ExpenseID string    `json:"expense_id"`
	Amount    float64   `json:"amount"`
	Rule      MatchRule `json:"rule"`
}

type BudgetSummary struct {
	TripID          string           `json:"trip_id"`
	Currency        string           `json:"currency"`
	EstimatedCost   float64          `json:"estimated_cost"`
	ActualSpent     float64          `json:"actual_spent"`
	Remaining       float64          `json:"remaining"`
	UsagePercentage float64          `json:"usage_percentage"`
	IsOverBudget    bool             `json:"is_over_budget"`
	BudgetStatus    BudgetStatus     `json:"budget_status"`
	Matched         []MatchedExpense `json:"matched_expenses"`
}
