package entity

import "time"

// Credential is the OAuth token pair for one user session. Values are
// immutable snapshots: a refresh produces a new Credential that replaces
// the old one, nothing mutates a Credential in place.
type Credential struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Expired reports whether the access token should be refreshed before use.
// A zero ExpiresAt means the expiry is unknown (cookie-borne credentials);
// those are used optimistically and staleness surfaces as a provider 401.
func (c *Credential) Expired(now time.Time, skew time.Duration) bool {
	if c == nil || c.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(c.ExpiresAt.Add(-skew))
}
