// internal/repositories/trip_repository.go
package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "moneyflow/internal/models/db_models"
)

type TripRepository interface {
	CreateTrip(ctx context.Context, trip *dbm.Trip) error
	// GetTripByID returns nil, nil when the trip does not exist.
	GetTripByID(ctx context.Context, tripID string) (*dbm.Trip, error)
	// ReplaceActivities optionally wipes every activity of the trip and then
	// inserts the given ones, in a single transaction.
	ReplaceActivities(ctx context.Context, tripID uuid.UUID, deleteAll bool, activities []dbm.Activity) error
	GetActivity(ctx context.Context, tripID string, activityID string) (*dbm.Activity, error)
	SetCheckIn(ctx context.Context, tripID string, activityID string, checkedIn bool) (bool, error)
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) CreateTrip(ctx context.Context, trip *dbm.Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *tripRepository) GetTripByID(ctx context.Context, tripID string) (*dbm.Trip, error) {
	var trip dbm.Trip
	err := r.db.WithContext(ctx).
		Where("id = ?", tripID).
		Preload("Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_date ASC NULLS LAST").Order("created_at ASC")
		}).
		First(&trip).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepository) ReplaceActivities(ctx context.Context, tripID uuid.UUID, deleteAll bool, activities []dbm.Activity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if deleteAll {
			if err := tx.Unscoped().Where("trip_id = ?", tripID).Delete(&dbm.Activity{}).Error; err != nil {
				return err
			}
		}

		if len(activities) == 0 {
			return nil
		}
		for i := range activities {
			activities[i].TripID = tripID
		}
		return tx.Create(&activities).Error
	})
}

func (r *tripRepository) GetActivity(ctx context.Context, tripID string, activityID string) (*dbm.Activity, error) {
	var act dbm.Activity
	err := r.db.WithContext(ctx).
		Where("id = ? AND trip_id = ?", activityID, tripID).
		First(&act).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &act, nil
}

func (r *tripRepository) SetCheckIn(ctx context.Context, tripID string, activityID string, checkedIn bool) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&dbm.Activity{}).
		Where("id = ? AND trip_id = ?", activityID, tripID).
		Update("checked_in", checkedIn)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
