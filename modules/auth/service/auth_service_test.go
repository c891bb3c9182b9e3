package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"scheduler-agent/core/config"
	"scheduler-agent/core/errors"
	"scheduler-agent/modules/auth/entity"

	"golang.org/x/oauth2"
)

func testConfig() *config.Config {
	return &config.Config{
		GoogleAPI: config.GoogleAPIConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURI:  "http://localhost:7070/auth/callback",
		},
	}
}

func TestIsAuthenticated(t *testing.T) {
	cases := []struct {
		name string
		cred *entity.Credential
		want bool
	}{
		{"nil credential", nil, false},
		{"empty access token", &entity.Credential{}, false},
		{"access token present", &entity.Credential{AccessToken: "tok"}, true},
		{"refresh token only", &entity.Credential{RefreshToken: "ref"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsAuthenticated(tc.cred); got != tc.want {
				t.Errorf("IsAuthenticated() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBuildConsentURL(t *testing.T) {
	config.Set(testConfig())

	url, appErr := NewAuthService().BuildConsentURL()
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	for _, fragment := range []string{
		"access_type=offline",
		"prompt=consent",
		"client_id=client-id",
		"response_type=code",
	} {
		if !strings.Contains(url, fragment) {
			t.Errorf("consent URL missing %q: %s", fragment, url)
		}
	}
}

func TestBuildConsentURLMissingConfig(t *testing.T) {
	config.Set(&config.Config{})

	_, appErr := NewAuthService().BuildConsentURL()
	if appErr == nil {
		t.Fatal("expected error for missing config")
	}
	if appErr.Code != errors.ErrConfig {
		t.Errorf("code = %s, want %s", appErr.Code, errors.ErrConfig)
	}
}

func TestExchangeCodeEmpty(t *testing.T) {
	config.Set(testConfig())

	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer server.Close()

	service := NewAuthServiceWithEndpoint(oauth2.Endpoint{TokenURL: server.URL + "/token"})
	_, appErr := service.ExchangeCode(context.Background(), "")
	if appErr == nil {
		t.Fatal("expected error for empty code")
	}
	if appErr.Code != errors.ErrMissingCode {
		t.Errorf("code = %s, want %s", appErr.Code, errors.ErrMissingCode)
	}
	if n := atomic.LoadInt64(&calls); n != 0 {
		t.Errorf("token endpoint was called %d times, want 0", n)
	}
}

func TestExchangeCodeSuccess(t *testing.T) {
	config.Set(testConfig())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err == nil {
			if got := r.FormValue("code"); got != "" && got != "abc123" {
				t.Errorf("exchanged code = %q, want abc123", got)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":3600}`))
	}))
	defer server.Close()

	service := NewAuthServiceWithEndpoint(oauth2.Endpoint{TokenURL: server.URL + "/token"})

	before := time.Now()
	cred, appErr := service.ExchangeCode(context.Background(), "abc123")
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	if cred.AccessToken != "tok" {
		t.Errorf("access token = %q, want %q", cred.AccessToken, "tok")
	}
	if cred.RefreshToken != "" {
		t.Errorf("refresh token = %q, want empty", cred.RefreshToken)
	}

	wantExpiry := before.Add(3600 * time.Second)
	if diff := cred.ExpiresAt.Sub(wantExpiry); diff < -30*time.Second || diff > 30*time.Second {
		t.Errorf("expires at %v, want about %v", cred.ExpiresAt, wantExpiry)
	}
}

func TestExchangeCodeProviderError(t *testing.T) {
	config.Set(testConfig())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer server.Close()

	service := NewAuthServiceWithEndpoint(oauth2.Endpoint{TokenURL: server.URL + "/token"})
	_, appErr := service.ExchangeCode(context.Background(), "reused-code")
	if appErr == nil {
		t.Fatal("expected error for provider rejection")
	}
	if appErr.Code != errors.ErrTokenExchange {
		t.Errorf("code = %s, want %s", appErr.Code, errors.ErrTokenExchange)
	}
	if !strings.Contains(appErr.Details(), "invalid_grant") {
		t.Errorf("details %q missing provider body", appErr.Details())
	}
}

func TestRefreshCredentialRetainsRefreshToken(t *testing.T) {
	config.Set(testConfig())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"new-tok","token_type":"Bearer","expires_in":3600}`))
	}))
	defer server.Close()

	service := NewAuthServiceWithEndpoint(oauth2.Endpoint{TokenURL: server.URL + "/token"})
	cred := &entity.Credential{
		AccessToken:  "old-tok",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}

	refreshed, appErr := service.RefreshCredential(context.Background(), cred)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	if refreshed.AccessToken != "new-tok" {
		t.Errorf("access token = %q, want new-tok", refreshed.AccessToken)
	}
	// The provider omitted the refresh token; the previous one must survive.
	if refreshed.RefreshToken != "refresh-1" {
		t.Errorf("refresh token = %q, want refresh-1", refreshed.RefreshToken)
	}
	if cred.AccessToken != "old-tok" {
		t.Errorf("original credential was mutated: %q", cred.AccessToken)
	}
}

func TestRefreshCredentialWithoutRefreshToken(t *testing.T) {
	config.Set(testConfig())

	service := NewAuthService()
	_, appErr := service.RefreshCredential(context.Background(), &entity.Credential{AccessToken: "tok"})
	if appErr == nil {
		t.Fatal("expected error without refresh token")
	}
	if appErr.Code != errors.ErrUnauthorized {
		t.Errorf("code = %s, want %s", appErr.Code, errors.ErrUnauthorized)
	}
}
