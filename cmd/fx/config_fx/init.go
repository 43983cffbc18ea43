package config_fx

import (
	"go.uber.org/fx"

	"tripgenie/internal/config"
)

var Module = fx.Provide(config.Load)
