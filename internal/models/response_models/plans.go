package response_models

import "encoding/json"

// GeneratedPlanData is the plan_data block returned by the trip-plan
// generation service. Cost and coordinate fields arrive in several shapes
// (numbers, numeric strings, "lat,lng" strings, objects) so they are kept raw
// and parsed leniently when the plan is flattened.
type GeneratedPlanData struct {
	DailyPlans []GeneratedDay `json:"daily_plans"`
	TripInfo   TripInfo       `json:"trip_info"`
	Summary    PlanSummary    `json:"summary"`
}

type TripInfo struct {
	Currency       string `json:"currency,omitempty"`
	TravelersCount int    `json:"travelers_count,omitempty"`
}

type PlanSummary struct {
	TotalEstimatedCost json.RawMessage `json:"total_estimated_cost,omitempty"`
}

type GeneratedDay struct {
	Day        int                 `json:"day"`
	Activities []GeneratedActivity `json:"activities"`
}

type GeneratedActivity struct {
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	ActivityType  string          `json:"activity_type,omitempty"`
	StartTime     string          `json:"start_time,omitempty"`
	EstimatedCost json.RawMessage `json:"estimated_cost,omitempty"`
	Location      string          `json:"location,omitempty"`
	Address       string          `json:"address,omitempty"`
	Coordinates   json.RawMessage `json:"coordinates,omitempty"`
}

// GeneratedTrip is the trip header the generator proposes. Dates are
// YYYY-MM-DD or RFC3339 strings.
type GeneratedTrip struct {
	Name        string  `json:"name,omitempty"`
	Destination string  `json:"destination,omitempty"`
	StartDate   string  `json:"start_date,omitempty"`
	EndDate     string  `json:"end_date,omitempty"`
	Budget      float64 `json:"budget,omitempty"`
	Currency    string  `json:"currency,omitempty"`
}
