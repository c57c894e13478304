package assistant_fx

import (
	"go.uber.org/fx"

	"moneyflow/internal/repositories"
	"moneyflow/internal/services"
	"moneyflow/pkg/kvstore"
	"moneyflow/pkg/utils"
)

var Module = fx.Provide(
	services.NewChatHistoryStore,
	providePlanModificationService,
	provideTripGenerationService,
	provideAssistantService,
	providePreferenceService)

func providePlanModificationService(backend utils.AIBackendInterface) services.PlanModificationServiceInterface {
	return services.NewPlanModificationService(backend)
}

func provideTripGenerationService(generator utils.TripPlanGenerator) services.TripGenerationServiceInterface {
	return services.NewTripGenerationService(generator)
}

func provideAssistantService(
	tripRepo repositories.TripRepository,
	history *services.ChatHistoryStore,
	backend utils.AIBackendInterface,
	modifier services.PlanModificationServiceInterface,
	generation services.TripGenerationServiceInterface,
) services.AssistantServiceInterface {
	return services.NewAssistantService(tripRepo, history, backend, modifier, generation)
}

func providePreferenceService(kv kvstore.Store, tripRepo repositories.TripRepository) services.PreferenceServiceInterface {
	return services.NewPreferenceService(kv, tripRepo)
}
