package planner_fx

import (
	"fmt"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"moneyflow/internal/config"
	"moneyflow/pkg/utils"
)

var Module = fx.Provide(
	ProvideAIBackendClient,
	ProvideAIBackend,
	ProvideTripPlanGenerator)

func ProvideAIBackendClient(cfg *config.Config) *utils.AIBackendClient {
	httpClient := &http.Client{Timeout: cfg.AIBackend.Timeout}
	return utils.NewAIBackendClient(httpClient, cfg.AIBackend.BaseURL, cfg.Generator.Path)
}

func ProvideAIBackend(client *utils.AIBackendClient) utils.AIBackendInterface {
	return client
}

// ProvideTripPlanGenerator picks the plan generator from
// TRIP_GENERATOR_PROVIDER. "backend" reuses the planning backend.
func ProvideTripPlanGenerator(
	lc fx.Lifecycle,
	cfg *config.Config,
	client *utils.AIBackendClient,
	log *zap.Logger,
) (utils.TripPlanGenerator, error) {
	log.Info("initializing trip plan generator", zap.String("provider", cfg.Generator.Provider))

	switch cfg.Generator.Provider {
	case "backend":
		return client, nil
	case "openai":
		return utils.NewOpenAITripPlanner(cfg.Generator.OpenAIAPIKey, cfg.Generator.OpenAIModel), nil
	case "gemini":
		planner, err := utils.NewGeminiTripPlanner(cfg.Generator.GeminiAPIKey, cfg.Generator.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		lc.Append(fx.StopHook(planner.Close))
		return planner, nil
	default:
		return nil, fmt.Errorf("unsupported trip generator provider: %s", cfg.Generator.Provider)
	}
}
