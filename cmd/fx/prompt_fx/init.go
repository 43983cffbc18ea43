package prompt_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripgenie/internal/config"
	"tripgenie/internal/services"
	"tripgenie/pkg/utils"
)

var Module = fx.Provide(
	ProvideTextGenerator,
	ProvideCurrencyService,
	services.NewPlannerService)

// ProvideTextGenerator creates the model client selected by LLM_PROVIDER.
func ProvideTextGenerator(cfg *config.Config, lc fx.Lifecycle, logger *zap.Logger) (utils.TextGenerator, error) {
	genCfg := utils.GeneratorConfig{
		Provider: cfg.LLM.Provider,
		Timeout:  cfg.LLM.Timeout,
	}
	switch cfg.LLM.Provider {
	case utils.ProviderOpenAI:
		genCfg.APIKey, genCfg.Model, genCfg.BaseURL = cfg.LLM.OpenAIAPIKey, cfg.LLM.OpenAIModel, cfg.LLM.OpenAIBaseURL
	default:
		genCfg.APIKey, genCfg.Model = cfg.LLM.GeminiAPIKey, cfg.LLM.GeminiModel
	}

	generator, err := utils.NewTextGenerator(context.Background(), genCfg)
	if err != nil {
		return nil, err
	}
	logger.Info("text generator ready", zap.String("provider", genCfg.Provider), zap.String("model", genCfg.Model))
	lc.Append(fx.Hook{OnStop: func(ctx context.Context) error {
		return generator.Close()
	}})
	return generator, nil
}

func ProvideCurrencyService(cfg *config.Config, logger *zap.Logger) services.CurrencyServiceInterface {
	return services.NewCurrencyService(cfg.Currency.APIKey, cfg.Currency.BaseURL, cfg.HTTPClientTimeout, logger)
}
