package repository

import (
	"net/http"
	"time"

	"scheduler-agent/core/constants"
	"scheduler-agent/modules/auth/entity"

	"github.com/labstack/echo/v4"
)

// CredentialRepository is the credential store. The backing medium is the
// caller's cookie jar: the server keeps no copy, every request carries its
// own credentials and each Read takes a fresh snapshot.
type CredentialRepository interface {
	Read(c echo.Context) *entity.Credential
	Write(c echo.Context, cred *entity.Credential)
	Clear(c echo.Context)
}

type cookieCredentialRepository struct {
	secure bool
}

func NewCredentialRepository(secure bool) CredentialRepository {
	return &cookieCredentialRepository{secure: secure}
}

// Read returns nil when no access-token cookie is present. The returned
// credential has an unknown expiry: the browser enforces cookie lifetime
// and does not echo it back.
func (r *cookieCredentialRepository) Read(c echo.Context) *entity.Credential {
	access, err := c.Cookie(constants.AccessTokenCookie)
	if err != nil || access.Value == "" {
		return nil
	}

	cred := &entity.Credential{AccessToken: access.Value}
	if refresh, err := c.Cookie(constants.RefreshTokenCookie); err == nil {
		cred.RefreshToken = refresh.Value
	}
	return cred
}

// Write replaces the cookie pair. The access cookie expires with the token;
// the refresh cookie gets a fixed 30-day window. The refresh cookie is only
// rewritten when the credential carries a refresh token, so a token observed
// on first consent survives later refreshes that omit it.
func (r *cookieCredentialRepository) Write(c echo.Context, cred *entity.Credential) {
	accessExpiry := cred.ExpiresAt
	if accessExpiry.IsZero() {
		accessExpiry = time.Now().Add(constants.DefaultTokenTTL)
	}
	c.SetCookie(r.newCookie(constants.AccessTokenCookie, cred.AccessToken, accessExpiry))

	if cred.RefreshToken != "" {
		refreshExpiry := time.Now().Add(constants.RefreshCookieTTL)
		c.SetCookie(r.newCookie(constants.RefreshTokenCookie, cred.RefreshToken, refreshExpiry))
	}
}

func (r *cookieCredentialRepository) Clear(c echo.Context) {
	expired := time.Unix(0, 0)
	for _, name := range []string{constants.AccessTokenCookie, constants.RefreshTokenCookie} {
		cookie := r.newCookie(name, "", expired)
		cookie.MaxAge = -1
		c.SetCookie(cookie)
	}
}

func (r *cookieCredentialRepository) newCookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   r.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
