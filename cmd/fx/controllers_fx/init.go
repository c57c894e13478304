package controllers_fx

import (
	"go.uber.org/fx"

	"moneyflow/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAssistantController),
	fx.Provide(controllers.NewTripController),
	fx.Provide(controllers.NewEditRequestController),
	fx.Provide(controllers.NewPreferenceController))
