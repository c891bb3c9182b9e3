package constants

import "time"

const (
	// DefaultTimeout bounds every outbound provider call.
	DefaultTimeout = 10 * time.Second

	// EventDuration is the fixed length of a scheduled event.
	EventDuration = time.Hour

	// DefaultTokenTTL is assumed when the provider omits expires_in.
	DefaultTokenTTL = 3600 * time.Second

	// TokenExpirySkew refreshes tokens slightly before the wall-clock deadline.
	TokenExpirySkew = 5 * time.Minute

	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"

	// RefreshCookieTTL is the fixed window for the refresh-token cookie.
	RefreshCookieTTL = 30 * 24 * time.Hour
)
