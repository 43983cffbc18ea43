package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripgenie/internal/repositories"
	"tripgenie/internal/services"
)

var Module = fx.Provide(provideAccountService)

func provideAccountService(accountRepo repositories.AccountRepository, logger *zap.Logger) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, logger)
}
