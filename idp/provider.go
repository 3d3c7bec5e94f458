// Package idp wraps the OIDC identity provider behind a handle the gateway
// can treat as immutable configuration. Discovery happens at most once per
// process; the handle is safe to share across concurrent requests.
package idp

import (
	"context"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/kingstalent/poster-gateway/internal/errors"
)

// Identity is what the gateway needs to know about an authenticated user.
type Identity struct {
	Email        string
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// Provider is the identity-provider client. Construct it once with New and
// inject it into the request handlers; discovery is deferred to first use and
// races are resolved by sync.Once.
type Provider struct {
	issuerURL    string
	clientID     string
	clientSecret string
	timeout      time.Duration

	initOnce sync.Once
	initErr  error
	oidcProv *oidc.Provider
	verifier *oidc.IDTokenVerifier
}

// New creates the provider handle. No network traffic happens here.
func New(issuerURL, clientID, clientSecret string, timeout time.Duration) *Provider {
	return &Provider{
		issuerURL:    issuerURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		timeout:      timeout,
	}
}

func (p *Provider) init() error {
	p.initOnce.Do(func() {
		if p.issuerURL == "" || p.clientID == "" {
			p.initErr = errors.Wrapf(errors.ErrProviderNotConfigured, "idp init missing issuer or client id")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()

		prov, err := oidc.NewProvider(ctx, p.issuerURL)
		if err != nil {
			p.initErr = errors.Wrapf(err, "idp init discovery %q", p.issuerURL)
			return
		}
		p.oidcProv = prov
		p.verifier = prov.Verifier(&oidc.Config{ClientID: p.clientID})
	})
	return p.initErr
}

func (p *Provider) oauthConfig(callbackURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     p.clientID,
		ClientSecret: p.clientSecret,
		Endpoint:     p.oidcProv.Endpoint(),
		RedirectURL:  callbackURL,
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}
}

// AuthCodeURL builds the provider authorization URL for one login attempt.
// The callback URL is supplied by the caller and is always derived from the
// tenant's configured origin, never from a request host. The account chooser
// is forced so a user holding several Google accounts picks deliberately.
func (p *Provider) AuthCodeURL(callbackURL, state, nonce, codeVerifier string) (string, error) {
	if err := p.init(); err != nil {
		return "", err
	}

	cfg := p.oauthConfig(callbackURL)
	return cfg.AuthCodeURL(state,
		oidc.Nonce(nonce),
		oauth2.S256ChallengeOption(codeVerifier),
		oauth2.SetAuthURLParam("prompt", "select_account"),
	), nil
}

// Exchange swaps an authorization code for a verified identity. A replayed or
// expired code fails here; callers fall through to their generic failure path.
func (p *Provider) Exchange(ctx context.Context, code, codeVerifier, nonce, callbackURL string) (*Identity, error) {
	if err := p.init(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cfg := p.oauthConfig(callbackURL)
	token, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(codeVerifier))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrExchangeFailed, "idp Exchange: %v", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, errors.Wrapf(errors.ErrExchangeFailed, "idp Exchange no id_token")
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrExchangeFailed, "idp Exchange verify: %v", err)
	}

	var claims struct {
		Nonce string `json:"nonce"`
		Email string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.Wrapf(errors.ErrExchangeFailed, "idp Exchange claims: %v", err)
	}
	if nonce != "" && claims.Nonce != nonce {
		return nil, errors.Wrapf(errors.ErrExchangeFailed, "idp Exchange nonce mismatch")
	}

	return &Identity{
		Email:        claims.Email,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}, nil
}
