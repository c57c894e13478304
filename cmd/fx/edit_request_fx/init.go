package edit_request_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"moneyflow/internal/config"
	"moneyflow/internal/repositories"
	"moneyflow/internal/services"
)

var Module = fx.Provide(
	provideEditRequestRepo,
	providePendingMonitor,
	provideEditRequestService)

func provideEditRequestRepo(db *gorm.DB) repositories.EditRequestRepository {
	return repositories.NewEditRequestRepository(db)
}

func providePendingMonitor(lc fx.Lifecycle, cfg *config.Config, repo repositories.EditRequestRepository) services.PendingMonitorInterface {
	monitor := services.NewPendingMonitor(repo, cfg.PendingPollInterval)
	lc.Append(fx.StopHook(monitor.StopAll))
	return monitor
}

func provideEditRequestService(
	tripRepo repositories.TripRepository,
	requestRepo repositories.EditRequestRepository,
	monitor services.PendingMonitorInterface,
) services.EditRequestServiceInterface {
	return services.NewEditRequestService(tripRepo, requestRepo, monitor)
}
