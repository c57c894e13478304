package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"moneyflow/internal/models/db_models"
	"moneyflow/internal/models/response_models"
	"moneyflow/internal/repositories"
	"moneyflow/pkg/logger"
	"moneyflow/pkg/utils"
)

var tripToken = regexp.MustCompile(`\[Trip:\s*([^\]]+)\]`)

type BudgetServiceInterface interface {
	GetTripBudget(ctx context.Context, tripID string, userID string) (*response_models.BudgetSummary, error)
}

type BudgetService struct {
	tripRepo    repositories.TripRepository
	expenseRepo repositories.ExpenseRepository
}

func NewBudgetService(tripRepo repositories.TripRepository, expenseRepo repositories.ExpenseRepository) BudgetServiceInterface {
	return &BudgetService{tripRepo: tripRepo, expenseRepo: expenseRepo}
}

func (s *BudgetService) GetTripBudget(ctx context.Context, tripID string, userID string) (*response_models.BudgetSummary, error) {
	trip, err := s.tripRepo.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	if !trip.IsMember(userID) {
		return nil, utils.ErrNotTripMember
	}

	members := append([]string{trip.CreatorID}, trip.Collaborators...)
	expenses, err := s.expenseRepo.ListCandidateExpenses(ctx, trip.ID, members)
	if err != nil {
		logger.Get().Error("list expenses failed", zap.String("trip_id", tripID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	summary := ReconcileTripBudget(trip, expenses)
	return &summary, nil
}

// ReconcileTripBudget attributes loose expenses to the trip and derives the
// spend figures. Each expense is tested against the rules in order (trip id,
// [Trip: ...] token, date window) and the first hit wins; a rule that does
// not match falls through to the next one.
func ReconcileTripBudget(trip *db_models.Trip, expenses []db_models.Expense) response_models.BudgetSummary {
	summary := response_models.BudgetSummary{
		TripID:  trip.ID.String(),
		Matched: []response_models.MatchedExpense{},
	}

	for _, e := range expenses {
		rule, ok := matchExpense(trip, e)
		if !ok {
			continue
		}
		summary.ActualSpent += e.Amount
		summary.Matched = append(summary.Matched, response_models.MatchedExpense{
			ExpenseID: e.ID.String(),
			Amount:    e.Amount,
			Rule:      rule,
		})
	}

	if trip.Budget != nil {
		summary.Currency = trip.Budget.Currency
	}
	if trip.Budget != nil && trip.Budget.EstimatedCost > 0 {
		summary.EstimatedCost = trip.Budget.EstimatedCost
	} else {
		summary.EstimatedCost = activityEstimates(trip.Activities)
	}

	actual := summary.ActualSpent
	b := db_models.Budget{EstimatedCost: summary.EstimatedCost, ActualCost: &actual, Currency: summary.Currency}
	summary.Remaining = b.Remaining()
	summary.UsagePercentage = b.UsagePercentage()
	summary.IsOverBudget = b.IsOverBudget()
	summary.BudgetStatus = ClassifyBudget(summary.EstimatedCost, summary.ActualSpent)
	return summary
}

// ClassifyBudget maps the unclamped usage ratio onto the status bands.
func ClassifyBudget(estimated, actual float64) response_models.BudgetStatus {
	if estimated <= 0 {
		if actual > 0 {
			return response_models.BudgetOver
		}
		return response_models.BudgetUnder
	}

	pct := actual / estimated * 100
	switch {
	case pct > 100:
		return response_models.BudgetOver
	case pct >= 90:
		return response_models.BudgetCritical
	case pct >= 75:
		return response_models.BudgetWarning
	case pct >= 50:
		return response_models.BudgetOnTrack
	default:
		return response_models.BudgetUnder
	}
}

func matchExpense(trip *db_models.Trip, e db_models.Expense) (response_models.MatchRule, bool) {
	if e.TripID != nil && *e.TripID == trip.ID {
		return response_models.MatchByTripID, true
	}

	if m := tripToken.FindStringSubmatch(e.Description); m != nil && tokenMatchesTrip(trip, m[1]) {
		return response_models.MatchByTripToken, true
	}

	if trip.StartDate.IsZero() || trip.EndDate.IsZero() || e.Date.IsZero() {
		return "", false
	}
	from := utils.StartOfDay(trip.StartDate).AddDate(0, 0, -1)
	to := utils.StartOfDay(trip.EndDate).AddDate(0, 0, 2)
	day := utils.StartOfDay(e.Date.In(trip.StartDate.Location()))
	if inWindow(day, from, to) {
		return response_models.MatchByDateRange, true
	}
	return "", false
}

// tokenMatchesTrip reports whether the token and any of the trip labels
// contain one another, ignoring case.
func tokenMatchesTrip(trip *db_models.Trip, token string) bool {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return false
	}
	for _, label := range []string{trip.Name, trip.Destination, trip.CombinedLabel()} {
		label = strings.ToLower(strings.TrimSpace(label))
		if label == "" {
			continue
		}
		if strings.Contains(token, label) || strings.Contains(label, token) {
			return true
		}
	}
	return false
}

func inWindow(day, from, to time.Time) bool {
	return !day.Before(from) && !day.After(to)
}

func activityEstimates(activities []db_models.Activity) float64 {
	var total float64
	for _, a := range activities {
		if a.Budget != nil {
			total += a.Budget.EstimatedCost
		}
	}
	return total
}
