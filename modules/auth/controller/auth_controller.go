package controller

import (
	"net/http"

	"scheduler-agent/core/controller"
	"scheduler-agent/core/logger"
	"scheduler-agent/modules/auth/dto"
	"scheduler-agent/modules/auth/repository"
	"scheduler-agent/modules/auth/service"

	"github.com/labstack/echo/v4"
)

type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
	Credentials repository.CredentialRepository
}

func NewAuthController(authService service.AuthServiceInterface, credentials repository.CredentialRepository) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    authService,
		Credentials:    credentials,
	}
}

// GetAuthURL returns the Google consent URL the client should redirect to.
// GET /auth/url
func (c *AuthController) GetAuthURL(ctx echo.Context) error {
	authURL, appErr := c.AuthService.BuildConsentURL()
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return ctx.JSON(http.StatusOK, dto.AuthURLResponse{URL: authURL})
}

// GoogleCallback exchanges the one-time authorization code for tokens, stores
// them as HTTP-only cookies and redirects back to the app root.
// GET /auth/callback?code=...
func (c *AuthController) GoogleCallback(ctx echo.Context) error {
	if errorParam := ctx.QueryParam("error"); errorParam != "" {
		logger.Error("AuthController:GoogleCallback:ProviderError",
			"error", errorParam,
			"description", ctx.QueryParam("error_description"),
		)
		return c.BadRequest(ctx, "Google OAuth error: "+errorParam)
	}

	code := ctx.QueryParam("code")
	if code == "" {
		return c.BadRequest(ctx, "No code provided")
	}

	cred, appErr := c.AuthService.ExchangeCode(ctx.Request().Context(), code)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	c.Credentials.Write(ctx, cred)
	return ctx.Redirect(http.StatusFound, "/")
}

// Session reports the login state. Computed solely from the presence of the
// access-token cookie, no provider round-trip.
// GET /auth/session
func (c *AuthController) Session(ctx echo.Context) error {
	cred := c.Credentials.Read(ctx)
	return ctx.JSON(http.StatusOK, dto.SessionResponse{LoggedIn: service.IsAuthenticated(cred)})
}

// Logout clears the credential cookie pair.
// POST /auth/logout
func (c *AuthController) Logout(ctx echo.Context) error {
	c.Credentials.Clear(ctx)
	return ctx.JSON(http.StatusOK, dto.SessionResponse{LoggedIn: false})
}
