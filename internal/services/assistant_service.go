package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"moneyflow/internal/models/db_models"
	"moneyflow/internal/models/request_models"
	"moneyflow/internal/models/response_models"
	"moneyflow/internal/repositories"
	"moneyflow/pkg/logger"
	"moneyflow/pkg/utils"
)

type AssistantServiceInterface interface {
	SendMessage(ctx context.Context, userID string, req request_models.AssistantMessageRequest) (*response_models.AssistantReply, error)
	GetHistory(ctx context.Context, userID, tripID, sessionID string) ([]db_models.ConversationMessage, error)
	ClearHistory(ctx context.Context, userID, tripID, sessionID string) error
}

type AssistantService struct {
	tripRepo   repositories.TripRepository
	history    *ChatHistoryStore
	backend    utils.AIBackendInterface
	modifier   PlanModificationServiceInterface
	generation TripGenerationServiceInterface
}

func NewAssistantService(
	tripRepo repositories.TripRepository,
	history *ChatHistoryStore,
	backend utils.AIBackendInterface,
	modifier PlanModificationServiceInterface,
	generation TripGenerationServiceInterface,
) AssistantServiceInterface {
	return &AssistantService{
		tripRepo:   tripRepo,
		history:    history,
		backend:    backend,
		modifier:   modifier,
		generation: generation,
	}
}

// SendMessage runs one dialog turn. Backend failures never fail the turn:
// they become the assistant's reply, flagged with IsError.
func (a *AssistantService) SendMessage(
	ctx context.Context,
	userID string,
	req request_models.AssistantMessageRequest,
) (*response_models.AssistantReply, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, utils.ErrInvalidInput
	}

	var trip *db_models.Trip
	if req.TripID != "" {
		t, err := a.memberTrip(ctx, userID, req.TripID)
		if err != nil {
			return nil, err
		}
		trip = t
	}

	sessionID := req.SessionID
	if trip == nil && sessionID == "" {
		sessionID = uuid.NewString()
	}
	key := HistoryKey(req.TripID, sessionID)

	past, err := a.history.Load(ctx, key)
	if err != nil {
		logger.Get().Error("load chat history failed", zap.String("key", key), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	analysis := AnalyzeIntent(message, trip)
	logger.Get().Debug("assistant intent",
		zap.String("intent", string(analysis.Intent)),
		zap.Bool("has_trip", analysis.HasTrip),
		zap.Int("parameters", analysis.Parameters()))

	reply := &response_models.AssistantReply{
		Intent:     string(analysis.Intent),
		SessionKey: key,
	}
	if trip == nil {
		reply.SessionID = sessionID
	}

	switch analysis.Intent {
	case IntentComprehensivePlanning:
		outcome, err := a.generation.GenerateTripPlan(ctx, message, trip)
		if err != nil {
			a.fail(reply, err)
			break
		}
		reply.Reply = generationReply(outcome)
		reply.Changes = outcome.Changes

	case IntentPlanModification:
		outcome, err := a.modifier.ModifyPlan(ctx, message, past, trip)
		if err != nil {
			a.fail(reply, err)
			break
		}
		reply.Reply = outcome.Message
		reply.Changes = outcome.Changes

	default:
		summary, err := a.backend.Invoke(ctx, message, past)
		if err != nil {
			a.fail(reply, err)
			break
		}
		reply.Reply = summary
	}

	history, err := a.history.Append(ctx, key,
		db_models.ConversationMessage{Role: db_models.RoleUser, Content: message},
		db_models.ConversationMessage{Role: db_models.RoleAssistant, Content: reply.Reply},
	)
	if err != nil {
		logger.Get().Error("save chat history failed", zap.String("key", key), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	reply.History = history
	return reply, nil
}

func (a *AssistantService) GetHistory(ctx context.Context, userID, tripID, sessionID string) ([]db_models.ConversationMessage, error) {
	key, err := a.historyKeyFor(ctx, userID, tripID, sessionID)
	if err != nil {
		return nil, err
	}
	msgs, err := a.history.Load(ctx, key)
	if err != nil {
		logger.Get().Error("load chat history failed", zap.String("key", key), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return msgs, nil
}

func (a *AssistantService) ClearHistory(ctx context.Context, userID, tripID, sessionID string) error {
	key, err := a.historyKeyFor(ctx, userID, tripID, sessionID)
	if err != nil {
		return err
	}
	if err := a.history.Clear(ctx, key); err != nil {
		logger.Get().Error("clear chat history failed", zap.String("key", key), zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *AssistantService) historyKeyFor(ctx context.Context, userID, tripID, sessionID string) (string, error) {
	if tripID != "" {
		if _, err := a.memberTrip(ctx, userID, tripID); err != nil {
			return "", err
		}
	}
	key := HistoryKey(tripID, sessionID)
	if key == "" {
		return "", utils.ErrSessionKeyRequired
	}
	return key, nil
}

func (a *AssistantService) memberTrip(ctx context.Context, userID, tripID string) (*db_models.Trip, error) {
	trip, err := a.tripRepo.GetTripByID(ctx, tripID)
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

func (a *AssistantService) fail(reply *response_models.AssistantReply, err error) {
	logger.Get().Warn("assistant backend call failed",
		zap.String("intent", reply.Intent),
		zap.Error(err))
	reply.IsError = true
	reply.Reply = AssistantErrorText(err)
}

// AssistantErrorText is the chat text shown for a failed backend call.
func AssistantErrorText(err error) string {
	var statusErr *utils.BackendStatusError
	var genErr *GenerationFailedError
	switch {
	case errors.As(err, &statusErr):
		return "Error: " + statusErr.Reason
	case errors.As(err, &genErr):
		if genErr.Message != "" {
			return "Could not generate a trip plan: " + genErr.Message
		}
		return "Could not generate a trip plan."
	case errors.Is(err, context.DeadlineExceeded):
		return "Error: the planning service did not answer in time"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

func generationReply(o *GenerationOutcome) string {
	var b strings.Builder
	if o.Message != "" {
		b.WriteString(o.Message)
		b.WriteString("\n")
	}
	days := map[string]struct{}{}
	for _, act := range o.Activities {
		if act.StartDate != nil {
			days[utils.FormatISODate(*act.StartDate)] = struct{}{}
		}
	}
	fmt.Fprintf(&b, "Created a plan with %d activities over %d days.", len(o.Activities), len(days))
	if o.TotalEstimatedCost != nil {
		fmt.Fprintf(&b, " Estimated total: %.0f %s.", *o.TotalEstimatedCost, o.Currency)
	}
	return b.String()
}
