package services

import (
	"strings"

	"moneyflow/internal/models/db_models"
)

type Intent string

const (
	IntentComprehensivePlanning Intent = "comprehensive_planning"
	IntentPlanModification      Intent = "plan_modification"
	IntentGeneralQuery          Intent = "general_query"
)

// Keyword lists are matched as case-insensitive substrings of the message
// padded with a space on each side.
var (
	planningKeywords = []string{
		"plan", "trip", "itinerary",
		"kế hoạch", "lịch trình", "chuyến đi", "du lịch", "hành trình",
	}
	durationKeywords = []string{
		"day", "night", "week", "weekend",
		"ngày", "đêm", "tuần", "cuối tuần",
	}
	budgetKeywords = []string{
		"budget", "cost", "money", "vnd", "usd", "$",
		"ngân sách", "triệu", "nghìn", "đồng", "chi phí", "tiền",
	}
	peopleKeywords = []string{
		"people", "person", "traveler", "adults", "family", "friends", "couple",
		"người", "khách", "gia đình", "bạn bè", "cặp đôi",
	}
	destinationKeywords = []string{
		"hà nội", "ha noi", "hanoi", "hồ chí minh", "ho chi minh", "sài gòn", "saigon",
		"đà nẵng", "da nang", "danang", "hội an", "hoi an", "huế", "hue",
		"nha trang", "đà lạt", "da lat", "dalat", "phú quốc", "phu quoc",
		"hạ long", "ha long", "sapa", "sa pa", "vũng tàu", "vung tau",
		"quy nhơn", "quy nhon", "cần thơ", "can tho", "ninh bình", "ninh binh",
		"paris", "tokyo", "bangkok", "singapore",
		" to ", "đến ", "tới ", "destination", "điểm đến", "visit",
	}
)

// IntentAnalysis is what the router saw in a message.
type IntentAnalysis struct {
	Intent         Intent
	HasTrip        bool
	PlanningIntent bool
	Duration       bool
	Budget         bool
	People         bool
	Destination    bool
}

// Parameters counts how many of the four trip parameter categories matched.
func (a IntentAnalysis) Parameters() int {
	n := 0
	for _, ok := range []bool{a.Duration, a.Budget, a.People, a.Destination} {
		if ok {
			n++
		}
	}
	return n
}

// ClassifyIntent routes a message. With a current trip any planning keyword
// is enough for full generation; without one the message must also carry at
// least two trip parameters.
func ClassifyIntent(message string, currentTrip *db_models.Trip) Intent {
	return AnalyzeIntent(message, currentTrip).Intent
}

func AnalyzeIntent(message string, currentTrip *db_models.Trip) IntentAnalysis {
	text := " " + strings.ToLower(message) + " "

	a := IntentAnalysis{
		HasTrip:        currentTrip != nil,
		PlanningIntent: containsAny(text, planningKeywords),
		Duration:       containsAny(text, durationKeywords),
		Budget:         containsAny(text, budgetKeywords),
		People:         containsAny(text, peopleKeywords),
		Destination:    containsAny(text, destinationKeywords),
	}

	switch {
	case a.HasTrip && a.PlanningIntent:
		a.Intent = IntentComprehensivePlanning
	case !a.HasTrip && a.PlanningIntent && a.Parameters() >= 2:
		a.Intent = IntentComprehensivePlanning
	case a.HasTrip:
		a.Intent = IntentPlanModification
	default:
		a.Intent = IntentGeneralQuery
	}
	return a
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
