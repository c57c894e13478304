package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	dbm "moneyflow/internal/models/db_models"
)

// ErrNotPending is returned by Resolve when the request already left the
// pending state.
var ErrNotPending = errors.New("edit request is not pending")

// ResolutionEffect is applied in the same transaction as an approval.
type ResolutionEffect struct {
	PromoteUserID  string
	ActivityID     *uuid.UUID
	ActivityFields map[string]any
}

type EditRequestRepository interface {
	Create(ctx context.Context, req *dbm.EditRequest) error
	// GetByID returns nil, nil when the request does not exist.
	GetByID(ctx context.Context, requestID string) (*dbm.EditRequest, error)
	ListPendingForOwner(ctx context.Context, ownerID string) ([]dbm.EditRequest, error)
	Resolve(ctx context.Context, requestID uuid.UUID, status dbm.EditRequestStatus, resolvedBy string, effect *ResolutionEffect) error
}

type editRequestRepository struct {
	db *gorm.DB
}

func NewEditRequestRepository(db *gorm.DB) EditRequestRepository {
	return &editRequestRepository{db: db}
}

func (r *editRequestRepository) Create(ctx context.Context, req *dbm.EditRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *editRequestRepository) GetByID(ctx context.Context, requestID string) (*dbm.EditRequest, error) {
	var req dbm.EditRequest
	err := r.db.WithContext(ctx).Where("id = ?", requestID).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *editRequestRepository) ListPendingForOwner(ctx context.Context, ownerID string) ([]dbm.EditRequest, error) {
	var out []dbm.EditRequest
	err := r.db.WithContext(ctx).
		Joins("JOIN trips ON trips.id = edit_requests.trip_id AND trips.deleted_at IS NULL").
		Where("trips.creator_id = ? AND edit_requests.status = ?", ownerID, dbm.EditRequestPending).
		Order("edit_requests.created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *editRequestRepository) Resolve(
	ctx context.Context,
	requestID uuid.UUID,
	status dbm.EditRequestStatus,
	resolvedBy string,
	effect *ResolutionEffect,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := resolvePending(tx, requestID, status, resolvedBy, time.Now().Unix())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}

		if effect == nil {
			return nil
		}

		if effect.ActivityID != nil && len(effect.ActivityFields) > 0 {
			if err := tx.Model(&dbm.Activity{}).
				Where("id = ?", *effect.ActivityID).
				Updates(effect.ActivityFields).Error; err != nil {
				return err
			}
		}

		if effect.PromoteUserID != "" {
			var req dbm.EditRequest
			if err := tx.Select("trip_id").Where("id = ?", requestID).First(&req).Error; err != nil {
				return err
			}
			var trip dbm.Trip
			if err := tx.Where("id = ?", req.TripID).First(&trip).Error; err != nil {
				return err
			}
			editors := appendUnique(trip.Editors, effect.PromoteUserID)
			members := appendUnique(trip.Collaborators, effect.PromoteUserID)
			if err := tx.Model(&dbm.Trip{}).
				Where("id = ?", trip.ID).
				Updates(map[string]any{"editors": editors, "collaborators": members}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// resolvePending moves a request out of pending. The status guard makes the
// transition happen at most once even when two approvals race.
func resolvePending(tx *gorm.DB, requestID uuid.UUID, status dbm.EditRequestStatus, resolvedBy string, now int64) *gorm.DB {
	return tx.Model(&dbm.EditRequest{}).
		Where("id = ? AND status = ?", requestID, dbm.EditRequestPending).
		Updates(map[string]any{
			"status":      status,
			"resolved_by": resolvedBy,
			"resolved_at": now,
			"updated_at":  now,
		})
}

func appendUnique(list pq.StringArray, v string) pq.StringArray {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
