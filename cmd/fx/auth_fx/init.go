package auth_fx

import (
	"net/http"

	"go.uber.org/fx"

	"tripgenie/internal/config"
	"tripgenie/pkg/utils"
)

var Module = fx.Provide(provideTokenVerifier)

func provideTokenVerifier(cfg *config.Config) utils.TokenVerifier {
	if cfg.Auth.Provider == "jwt" {
		return utils.NewHMACTokenVerifier(cfg.Auth.JWTSecret)
	}
	return utils.NewFirebaseTokenVerifier(
		cfg.Auth.FirebaseProjectID,
		cfg.Auth.FirebaseCertsURL,
		&http.Client{Timeout: cfg.HTTPClientTimeout},
	)
}
