package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"moneyflow/internal/models/db_models"
	"moneyflow/internal/models/request_models"
	"moneyflow/internal/models/response_models"
	"moneyflow/internal/repositories"
	"moneyflow/pkg/logger"
	"moneyflow/pkg/utils"
)

type TripServiceInterface interface {
	CreateTrip(ctx context.Context, userID string, req request_models.CreateTripRequest) (*db_models.Trip, error)
	GetTrip(ctx context.Context, userID, tripID string) (*db_models.Trip, error)
	ApplyChanges(ctx context.Context, userID, tripID string, changes []response_models.ChangeDescriptor) (*db_models.Trip, error)
	SetCheckIn(ctx context.Context, userID, tripID, activityID string, checkedIn bool) error
	AddExpense(ctx context.Context, userID, tripID string, req request_models.CreateExpenseRequest) (*db_models.Expense, error)
	RecordExpense(ctx context.Context, userID string, req request_models.RecordExpenseRequest) (*db_models.Expense, error)
}

type TripService struct {
	tripRepo    repositories.TripRepository
	expenseRepo repositories.ExpenseRepository
}

func NewTripService(tripRepo repositories.TripRepository, expenseRepo repositories.ExpenseRepository) TripServiceInterface {
	return &TripService{tripRepo: tripRepo, expenseRepo: expenseRepo}
}

func (t *TripService) CreateTrip(ctx context.Context, userID string, req request_models.CreateTripRequest) (*db_models.Trip, error) {
	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	trip := &db_models.Trip{
		Name:        strings.TrimSpace(req.Name),
		Destination: strings.TrimSpace(req.Destination),
		StartDate:   start,
		EndDate:     end,
		CreatorID:   userID,
	}
	if !trip.HasValidDates() {
		return nil, utils.ErrInvalidTripDate
	}
	for _, c := range req.Collaborators {
		c = strings.TrimSpace(c)
		if c != "" && c != userID && !trip.IsMember(c) {
			trip.Collaborators = append(trip.Collaborators, c)
		}
	}
	if req.Budget != nil {
		trip.Budget = &db_models.Budget{
			EstimatedCost: req.Budget.EstimatedCost,
			ActualCost:    req.Budget.ActualCost,
			Currency:      req.Budget.Currency,
		}
	}

	if err := t.tripRepo.CreateTrip(ctx, trip); err != nil {
		logger.Get().Error("create trip failed", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return trip, nil
}

func (t *TripService) GetTrip(ctx context.Context, userID, tripID string) (*db_models.Trip, error) {
	trip, err := t.tripRepo.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	if !trip.IsMember(userID) {
		return nil, utils.ErrNotTripMember
	}
	return trip, nil
}

// ApplyChanges applies descriptors produced by the assistant. Only editors
// may apply them; other members go through edit requests.
func (t *TripService) ApplyChanges(
	ctx context.Context,
	userID, tripID string,
	changes []response_models.ChangeDescriptor,
) (*db_models.Trip, error) {
	trip, err := t.GetTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.IsEditor(userID) {
		return nil, utils.ErrNotTripEditor
	}

	deleteAll := false
	var add []db_models.Activity
	for _, ch := range changes {
		switch ch.Action {
		case response_models.ChangeActionDeleteAll:
			// A later delete_all discards adds that preceded it.
			deleteAll = true
			add = add[:0]
		case response_models.ChangeActionAdd:
			if ch.Activity == nil || strings.TrimSpace(ch.Activity.Title) == "" {
				return nil, utils.ErrInvalidInput
			}
			add = append(add, normalizeActivity(*ch.Activity))
		default:
			return nil, utils.ErrUnknownChange
		}
	}

	if err := t.tripRepo.ReplaceActivities(ctx, trip.ID, deleteAll, add); err != nil {
		logger.Get().Error("apply trip changes failed", zap.String("trip_id", tripID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return t.GetTrip(ctx, userID, tripID)
}

func (t *TripService) SetCheckIn(ctx context.Context, userID, tripID, activityID string, checkedIn bool) error {
	if _, err := t.GetTrip(ctx, userID, tripID); err != nil {
		return err
	}
	found, err := t.tripRepo.SetCheckIn(ctx, tripID, activityID, checkedIn)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !found {
		return utils.ErrActivityNotFound
	}
	return nil
}

func (t *TripService) AddExpense(
	ctx context.Context,
	userID, tripID string,
	req request_models.CreateExpenseRequest,
) (*db_models.Expense, error) {
	trip, err := t.GetTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, utils.ErrInvalidInput
	}

	date := time.Now()
	if req.Date != "" {
		if date, err = utils.ParseDate(req.Date); err != nil {
			return nil, utils.ErrInvalidInput
		}
	}

	currency := req.Currency
	if currency == "" && trip.Budget != nil {
		currency = trip.Budget.Currency
	}

	exp := &db_models.Expense{
		UserID:      userID,
		TripID:      &trip.ID,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
		Currency:    currency,
	}
	if req.ActivityID != "" {
		actID, err := uuid.Parse(req.ActivityID)
		if err != nil {
			return nil, utils.ErrInvalidInput
		}
		act, err := t.tripRepo.GetActivity(ctx, tripID, req.ActivityID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if act == nil {
			return nil, utils.ErrActivityNotFound
		}
		exp.ActivityID = &actID
	}

	if err := t.expenseRepo.CreateExpense(ctx, exp); err != nil {
		logger.Get().Error("create expense failed", zap.String("trip_id", tripID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return exp, nil
}

func normalizeActivity(a db_models.Activity) db_models.Activity {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.ActivityType == "" {
		a.ActivityType = db_models.ActivityTypeActivity
	}
	if a.Status == "" {
		a.Status = db_models.ActivityStatusPlanned
	}
	if a.Priority == "" {
		a.Priority = db_models.PriorityMedium
	}
	a.CheckedIn = false
	return a
}

// RecordExpense stores an expense that may not name a trip. With a trip id it
// behaves like AddExpense; without one the expense is kept loose and reaches a
// trip budget only through the description token or the date window.
func (t *TripService) RecordExpense(
	ctx context.Context,
	userID string,
	req request_models.RecordExpenseRequest,
) (*db_models.Expense, error) {
	if strings.TrimSpace(req.TripID) != "" {
		return t.AddExpense(ctx, userID, strings.TrimSpace(req.TripID), req.CreateExpenseRequest)
	}
	if req.Amount <= 0 || req.ActivityID != "" {
		return nil, utils.ErrInvalidInput
	}

	date := time.Now()
	if req.Date != "" {
		var err error
		if date, err = utils.ParseDate(req.Date); err != nil {
			return nil, utils.ErrInvalidInput
		}
	}

	exp := &db_models.Expense{
		UserID:      userID,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
		Currency:    req.Currency,
	}
	if err := t.expenseRepo.CreateExpense(ctx, exp); err != nil {
		logger.Get().Error("create loose expense failed", zap.String("user_id", userID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return exp, nil
}
