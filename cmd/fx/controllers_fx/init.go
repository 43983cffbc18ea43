package controllers_fx

import (
	"go.uber.org/fx"

	"tripgenie/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewPlannerController),
	fx.Provide(controllers.NewMapsController),
	fx.Provide(controllers.NewTripController),
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewHealthController))
