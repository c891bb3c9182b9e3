package auth

import (
	"scheduler-agent/core/config"
	"scheduler-agent/core/logger"
	"scheduler-agent/modules/auth/controller"
	"scheduler-agent/modules/auth/repository"
	"scheduler-agent/modules/auth/router"
	"scheduler-agent/modules/auth/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, secureCookies bool) {
	repo := repository.NewCredentialRepository(secureCookies)
	authService := service.NewAuthService()
	ctrl := controller.NewAuthController(authService, repo)

	warnIfUnconfigured()

	router.NewAuthRouter(ctrl).Setup(e)
}

func warnIfUnconfigured() {
	cfg, ok := config.GetSafe()
	if !ok {
		logger.Warn("Auth:ConfigNotInitialized")
		return
	}

	if cfg.GoogleAPI.ClientID == "" || cfg.GoogleAPI.ClientSecret == "" || cfg.GoogleAPI.RedirectURI == "" {
		logger.Warn("Auth:GoogleOAuthNotConfigured",
			"reason", "CLIENT_ID, CLIENT_SECRET or REDIRECT_URI missing from env",
		)
	}
}

// GetCredentialRepository returns the credential store for use by other
// modules.
func GetCredentialRepository(secureCookies bool) repository.CredentialRepository {
	return repository.NewCredentialRepository(secureCookies)
}
