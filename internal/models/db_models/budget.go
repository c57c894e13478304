package db_models

// Budget is attached to a Trip or an Activity and stored as a json column.
type Budget struct {
	EstimatedCost float64  `json:"estimated_cost"`
	ActualCost    *float64 `json:"actual_cost,omitempty"`
	Currency      string   `json:"currency"`
}

func (b Budget) actual() float64 {
	if b.ActualCost == nil {
		return 0
	}
	return *b.ActualCost
}

func (b Budget) Remaining() float64 {
	return b.EstimatedCost - b.actual()
}

// UsagePercentage is clamped to [0, 100]; use IsOverBudget to detect overspend.
func (b Budget) UsagePercentage() float64 {
	if b.EstimatedCost <= 0 {
		if b.actual() > 0 {
			return 100
		}
		return 0
	}
	pct := b.actual() / b.EstimatedCost * 100
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

func (b Budget) IsOverBudget() bool {
	return b.actual() > b.EstimatedCost
}
