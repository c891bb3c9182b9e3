package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"scheduler-agent/core/config"
	"scheduler-agent/core/constants"
	"scheduler-agent/core/errors"
	"scheduler-agent/core/logger"
	"scheduler-agent/modules/auth/entity"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type AuthServiceInterface interface {
	BuildConsentURL() (string, *errors.AppError)
	ExchangeCode(ctx context.Context, code string) (*entity.Credential, *errors.AppError)
	RefreshCredential(ctx context.Context, cred *entity.Credential) (*entity.Credential, *errors.AppError)
}

type AuthService struct {
	endpoint oauth2.Endpoint
}

func NewAuthService() *AuthService {
	return &AuthService{endpoint: google.Endpoint}
}

// NewAuthServiceWithEndpoint points the service at a non-Google token
// endpoint. Used by tests.
func NewAuthServiceWithEndpoint(endpoint oauth2.Endpoint) *AuthService {
	return &AuthService{endpoint: endpoint}
}

// IsAuthenticated reports whether a credential can authorize calendar calls.
// Pure presence check: the token is not validated against the provider, a
// stale or revoked token is only discovered when a downstream call fails.
func IsAuthenticated(cred *entity.Credential) bool {
	return cred != nil && cred.AccessToken != ""
}

func (service *AuthService) oauthConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleAPI.ClientID,
		ClientSecret: cfg.GoogleAPI.ClientSecret,
		RedirectURL:  cfg.GoogleAPI.RedirectURI,
		Scopes: []string{
			"https://www.googleapis.com/auth/calendar.events",
			"https://www.googleapis.com/auth/userinfo.email",
		},
		Endpoint: service.endpoint,
	}
}

// BuildConsentURL constructs the Google consent URL. Offline access and
// forced re-consent are always requested so the provider issues a refresh
// token on every grant, not only the first one.
func (service *AuthService) BuildConsentURL() (string, *errors.AppError) {
	cfg, ok := config.GetSafe()
	if !ok {
		return "", errors.NewAppError(errors.ErrConfig, "config not initialized", nil)
	}

	if cfg.GoogleAPI.ClientID == "" || cfg.GoogleAPI.RedirectURI == "" {
		return "", errors.NewAppError(errors.ErrConfig, "Google OAuth configuration is missing", nil)
	}

	authURL := service.oauthConfig(cfg).AuthCodeURL("", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	return authURL, nil
}

// ExchangeCode trades a one-time authorization code for a credential. The
// code must not be replayed; the provider rejects a reused code.
func (service *AuthService) ExchangeCode(ctx context.Context, code string) (*entity.Credential, *errors.AppError) {
	if code == "" {
		return nil, errors.NewAppError(errors.ErrMissingCode, "No code provided", nil)
	}

	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.NewAppError(errors.ErrConfig, "config not initialized", nil)
	}
	if cfg.GoogleAPI.ClientID == "" || cfg.GoogleAPI.ClientSecret == "" || cfg.GoogleAPI.RedirectURI == "" {
		return nil, errors.NewAppError(errors.ErrConfig, "Google OAuth configuration is missing", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	token, err := service.oauthConfig(cfg).Exchange(ctx, code)
	if err != nil {
		logger.Error("AuthService:ExchangeCode:Exchange:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrTokenExchange, "Failed to fetch token", providerError(err))
	}

	cred := &entity.Credential{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
	}
	if cred.ExpiresAt.IsZero() {
		cred.ExpiresAt = time.Now().Add(constants.DefaultTokenTTL)
	}

	logger.Info("AuthService:ExchangeCode:Success",
		"has_refresh_token", cred.RefreshToken != "",
		"expires_at", cred.ExpiresAt,
	)
	return cred, nil
}

// RefreshCredential obtains a fresh access token with the refresh grant and
// returns a replacement credential. Providers often omit the refresh token
// on refresh responses; the previous one is carried over in that case.
func (service *AuthService) RefreshCredential(ctx context.Context, cred *entity.Credential) (*entity.Credential, *errors.AppError) {
	if cred == nil || cred.RefreshToken == "" {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "no refresh token available", nil)
	}

	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.NewAppError(errors.ErrConfig, "config not initialized", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	tokenSource := service.oauthConfig(cfg).TokenSource(ctx, &oauth2.Token{
		RefreshToken: cred.RefreshToken,
	})
	token, err := tokenSource.Token()
	if err != nil {
		logger.Error("AuthService:RefreshCredential:Token:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrTokenExchange, "Failed to refresh token", providerError(err))
	}

	refreshed := &entity.Credential{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
	}
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = cred.RefreshToken
	}
	if refreshed.ExpiresAt.IsZero() {
		refreshed.ExpiresAt = time.Now().Add(constants.DefaultTokenTTL)
	}
	return refreshed, nil
}

// providerError keeps the raw provider response body attached for operator
// diagnostics.
func providerError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if stderrors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		return fmt.Errorf("provider response %d: %s", retrieveErr.Response.StatusCode, string(retrieveErr.Body))
	}
	return err
}
