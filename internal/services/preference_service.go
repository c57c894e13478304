package services

import (
	"context"

	"go.uber.org/zap"

	"moneyflow/internal/repositories"
	"moneyflow/pkg/kvstore"
	"moneyflow/pkg/logger"
	"moneyflow/pkg/utils"
)

const lastMapTripPrefix = "last_map_trip_"

type PreferenceServiceInterface interface {
	GetLastTrip(ctx context.Context, userID string) (string, error)
	SetLastTrip(ctx context.Context, userID string, tripID string) error
}

type PreferenceService struct {
	kv       kvstore.Store
	tripRepo repositories.TripRepository
}

func NewPreferenceService(kv kvstore.Store, tripRepo repositories.TripRepository) PreferenceServiceInterface {
	return &PreferenceService{kv: kv, tripRepo: tripRepo}
}

// GetLastTrip returns "" when nothing was stored.
func (p *PreferenceService) GetLastTrip(ctx context.Context, userID string) (string, error) {
	v, ok, err := p.kv.Get(ctx, lastMapTripPrefix+userID)
	if err != nil {
		logger.Get().Error("read last trip failed", zap.String("user_id", userID), zap.Error(err))
		return "", utils.ErrDatabaseError
	}
	if !ok {
		return "", nil
	}
	return v, nil
}

func (p *PreferenceService) SetLastTrip(ctx context.Context, userID string, tripID string) error {
	if tripID == "" {
		return utils.ErrInvalidInput
	}
	trip, err := p.tripRepo.GetTripByID(ctx, tripID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if trip == nil {
		return utils.ErrTripNotFound
	}
	if !trip.IsMember(userID) {
		return utils.ErrNotTripMember
	}
	if err := p.kv.Set(ctx, lastMapTripPrefix+userID, tripID); err != nil {
		logger.Get().Error("write last trip failed", zap.String("user_id", userID), zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}
