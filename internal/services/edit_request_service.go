package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"moneyflow/internal/models/db_models"
	"moneyflow/internal/models/request_models"
	"moneyflow/internal/repositories"
	"moneyflow/pkg/logger"
	"moneyflow/pkg/utils"
)

const roleEditor = "editor"

// PendingNotifier is told when the pending set of an owner changed.
type PendingNotifier interface {
	Refresh(ownerID string)
}

type EditRequestServiceInterface interface {
	CreateEditRequest(ctx context.Context, userID, tripID string, req request_models.CreateEditRequestRequest) (*db_models.EditRequest, error)
	ListPending(ctx context.Context, ownerID string) ([]db_models.EditRequest, error)
	Approve(ctx context.Context, ownerID, requestID string) (*db_models.EditRequest, error)
	Reject(ctx context.Context, ownerID, requestID string) (*db_models.EditRequest, error)
}

type EditRequestService struct {
	tripRepo    repositories.TripRepository
	requestRepo repositories.EditRequestRepository
	notifier    PendingNotifier
}

func NewEditRequestService(
	tripRepo repositories.TripRepository,
	requestRepo repositories.EditRequestRepository,
	notifier PendingNotifier,
) EditRequestServiceInterface {
	return &EditRequestService{tripRepo: tripRepo, requestRepo: requestRepo, notifier: notifier}
}

func (s *EditRequestService) CreateEditRequest(
	ctx context.Context,
	userID, tripID string,
	req request_models.CreateEditRequestRequest,
) (*db_models.EditRequest, error) {
	trip, err := s.tripRepo.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	if trip.IsOwner(userID) {
		return nil, utils.ErrOwnerCannotRequest
	}
	if !trip.IsMember(userID) {
		return nil, utils.ErrNotTripMember
	}

	er := &db_models.EditRequest{
		RequesterID: userID,
		TripID:      trip.ID,
		Kind:        db_models.EditRequestKind(req.Kind),
		Changes:     datatypes.JSONMap(req.Changes),
		Status:      db_models.EditRequestPending,
	}
	if er.Changes == nil {
		er.Changes = datatypes.JSONMap{}
	}

	switch er.Kind {
	case db_models.EditKindActivity:
		if req.ActivityID == "" {
			return nil, fmt.Errorf("%w: activity_id is required", utils.ErrInvalidInput)
		}
		actID, err := uuid.Parse(req.ActivityID)
		if err != nil {
			return nil, fmt.Errorf("%w: activity_id", utils.ErrInvalidInput)
		}
		act, err := s.tripRepo.GetActivity(ctx, tripID, req.ActivityID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if act == nil {
			return nil, utils.ErrActivityNotFound
		}
		if _, err := ActivityFieldUpdates(er.Changes); err != nil {
			return nil, err
		}
		er.ActivityID = &actID

	case db_models.EditKindPermission:
		if _, err := requestedRole(er.Changes); err != nil {
			return nil, err
		}
		if trip.IsEditor(userID) {
			return nil, fmt.Errorf("%w: already an editor", utils.ErrInvalidInput)
		}

	default:
		return nil, fmt.Errorf("%w: kind %q", utils.ErrInvalidInput, req.Kind)
	}

	if err := s.requestRepo.Create(ctx, er); err != nil {
		logger.Get().Error("create edit request failed", zap.String("trip_id", tripID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	s.notify(trip.CreatorID)
	return er, nil
}

func (s *EditRequestService) ListPending(ctx context.Context, ownerID string) ([]db_models.EditRequest, error) {
	list, err := s.requestRepo.ListPendingForOwner(ctx, ownerID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return list, nil
}

func (s *EditRequestService) Approve(ctx context.Context, ownerID, requestID string) (*db_models.EditRequest, error) {
	return s.resolve(ctx, ownerID, requestID, db_models.EditRequestApproved)
}

func (s *EditRequestService) Reject(ctx context.Context, ownerID, requestID string) (*db_models.EditRequest, error) {
	return s.resolve(ctx, ownerID, requestID, db_models.EditRequestRejected)
}

func (s *EditRequestService) resolve(
	ctx context.Context,
	ownerID, requestID string,
	status db_models.EditRequestStatus,
) (*db_models.EditRequest, error) {
	er, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if er == nil {
		return nil, utils.ErrEditRequestNotFound
	}

	trip, err := s.tripRepo.GetTripByID(ctx, er.TripID.String())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	if !trip.IsOwner(ownerID) {
		return nil, utils.ErrNotTripOwner
	}
	if !er.IsPending() {
		return nil, utils.ErrRequestAlreadyResolved
	}

	var effect *repositories.ResolutionEffect
	if status == db_models.EditRequestApproved {
		effect, err = resolutionEffect(er)
		if err != nil {
			return nil, err
		}
	}

	if err := s.requestRepo.Resolve(ctx, er.ID, status, ownerID, effect); err != nil {
		if errors.Is(err, repositories.ErrNotPending) {
			return nil, utils.ErrRequestAlreadyResolved
		}
		logger.Get().Error("resolve edit request failed", zap.String("request_id", requestID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	logger.Get().Info("edit request resolved",
		zap.String("request_id", requestID),
		zap.String("status", string(status)),
		zap.String("kind", string(er.Kind)))
	s.notify(ownerID)

	updated, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil || updated == nil {
		return nil, utils.ErrDatabaseError
	}
	return updated, nil
}

func (s *EditRequestService) notify(ownerID string) {
	if s.notifier != nil {
		s.notifier.Refresh(ownerID)
	}
}

func resolutionEffect(er *db_models.EditRequest) (*repositories.ResolutionEffect, error) {
	switch er.Kind {
	case db_models.EditKindPermission:
		if _, err := requestedRole(er.Changes); err != nil {
			return nil, err
		}
		return &repositories.ResolutionEffect{PromoteUserID: er.RequesterID}, nil
	case db_models.EditKindActivity:
		fields, err := ActivityFieldUpdates(er.Changes)
		if err != nil {
			return nil, err
		}
		return &repositories.ResolutionEffect{ActivityID: er.ActivityID, ActivityFields: fields}, nil
	}
	return nil, fmt.Errorf("%w: kind %q", utils.ErrInvalidInput, er.Kind)
}

func requestedRole(changes map[string]any) (string, error) {
	raw, ok := changes["role"]
	if !ok || raw == nil {
		return roleEditor, nil
	}
	role, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: role must be a string", utils.ErrInvalidInput)
	}
	role = strings.ToLower(strings.TrimSpace(role))
	if role != "" && role != roleEditor {
		return "", fmt.Errorf("%w: unsupported role %q", utils.ErrInvalidInput, role)
	}
	return roleEditor, nil
}

// ActivityFieldUpdates turns a proposed change payload into column updates.
// Only a fixed set of fields may be changed through a request.
func ActivityFieldUpdates(changes map[string]any) (map[string]any, error) {
	if len(changes) == 0 {
		return nil, fmt.Errorf("%w: changes are empty", utils.ErrInvalidInput)
	}

	out := make(map[string]any, len(changes))
	for field, v := range changes {
		switch field {
		case "title", "description":
			s, ok := v.(string)
			if !ok || (field == "title" && strings.TrimSpace(s) == "") {
				return nil, fmt.Errorf("%w: %s", utils.ErrInvalidInput, field)
			}
			out[field] = s
		case "activity_type":
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s", utils.ErrInvalidInput, field)
			}
			out[field] = db_models.ParseActivityType(s)
		case "status":
			s, ok := v.(string)
			if !ok || !validStatus(db_models.ActivityStatus(s)) {
				return nil, fmt.Errorf("%w: %s", utils.ErrInvalidInput, field)
			}
			out[field] = db_models.ActivityStatus(s)
		case "priority":
			s, ok := v.(string)
			if !ok || !validPriority(db_models.ActivityPriority(s)) {
				return nil, fmt.Errorf("%w: %s", utils.ErrInvalidInput, field)
			}
			out[field] = db_models.ActivityPriority(s)
		case "start_date", "end_date":
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s", utils.ErrInvalidInput, field)
			}
			t, err := utils.ParseDate(s)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", utils.ErrInvalidInput, field)
			}
			out[field] = t
		case "checked_in":
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("%w: %s", utils.ErrInvalidInput, field)
			}
			out[field] = b
		default:
			return nil, fmt.Errorf("%w: field %q cannot be changed", utils.ErrInvalidInput, field)
		}
	}
	return out, nil
}

func validStatus(s db_models.ActivityStatus) bool {
	switch s {
	case db_models.ActivityStatusPlanned, db_models.ActivityStatusConfirmed,
		db_models.ActivityStatusCompleted, db_models.ActivityStatusCancelled:
		return true
	}
	return false
}

func validPriority(p db_models.ActivityPriority) bool {
	switch p {
	case db_models.PriorityLow, db_models.PriorityMedium, db_models.PriorityHigh:
		return true
	}
	return false
}
