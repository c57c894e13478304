package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"moneyflow/internal/models/db_models"
	"moneyflow/internal/models/response_models"
	"moneyflow/pkg/logger"
	"moneyflow/pkg/utils"
)

const (
	EditActionAdd    = "add"
	EditActionRemove = "remove"
	EditActionNone   = "none"
)

// ModificationOutcome is the translated answer of the edit endpoint. Message
// is what the assistant shows; Changes is what the caller should apply.
type ModificationOutcome struct {
	Message    string
	ActionType string
	Changes    []response_models.ChangeDescriptor
}

type PlanModificationServiceInterface interface {
	ModifyPlan(ctx context.Context, command string, history []db_models.ConversationMessage, trip *db_models.Trip) (*ModificationOutcome, error)
}

type PlanModificationService struct {
	backend utils.AIBackendInterface
}

func NewPlanModificationService(backend utils.AIBackendInterface) PlanModificationServiceInterface {
	return &PlanModificationService{backend: backend}
}

func (s *PlanModificationService) ModifyPlan(
	ctx context.Context,
	command string,
	history []db_models.ConversationMessage,
	trip *db_models.Trip,
) (*ModificationOutcome, error) {
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}

	resp, err := s.backend.EditPlan(ctx, utils.EditPlanRequest{
		Command:             command,
		TripID:              trip.ID.String(),
		ConversationHistory: history,
	})
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		msg := strings.TrimSpace(resp.Message)
		if msg == "" {
			msg = "edit-plan returned success=false"
		}
		return nil, fmt.Errorf("%w: %s", utils.ErrUnexpectedBehaviorOfAI, msg)
	}

	out := &ModificationOutcome{
		Message:    resp.Message,
		ActionType: resp.ActionType,
	}
	if !resp.CanModify {
		return out, nil
	}

	switch strings.ToLower(resp.ActionType) {
	case EditActionAdd:
		act := activityFromModification(trip, resp.Modifications)
		out.Changes = []response_models.ChangeDescriptor{{
			Action:   response_models.ChangeActionAdd,
			Activity: act,
		}}
	case EditActionRemove:
		logger.Get().Info("remove modification is not applied",
			zap.String("trip_id", trip.ID.String()),
			zap.String("activity", resp.Modifications.Activity))
	default:
		// "none" and anything unknown leave the trip untouched.
	}
	return out, nil
}

func activityFromModification(trip *db_models.Trip, mod utils.EditPlanModifications) *db_models.Activity {
	day := 1
	if mod.Day != nil && int(*mod.Day) > 0 {
		day = int(*mod.Day)
	}
	start := utils.DayOfTrip(trip.StartDate, day, utils.DefaultActivityHour, utils.DefaultActivityMinute)

	title := strings.TrimSpace(mod.Activity)
	if title == "" {
		title = "New activity"
	}

	act := &db_models.Activity{
		TripID:       trip.ID,
		Title:        title,
		ActivityType: db_models.ParseActivityType(mod.ActivityType),
		Status:       db_models.ActivityStatusPlanned,
		Priority:     db_models.PriorityMedium,
		StartDate:    &start,
	}
	act.ID = uuid.New()
	return act
}
