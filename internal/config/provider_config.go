package config

import "time"

// ProviderConfig exposes the identity-provider client settings. The client
// credentials are opaque to the gateway; they are handed straight to the
// oauth2/oidc libraries.
type ProviderConfig interface {
	GetIssuerURL() string
	GetClientID() string
	GetClientSecret() string
	GetProviderTimeout() time.Duration
}

type Provider struct{}

var _ ProviderConfig = Provider{}

func (Provider) GetIssuerURL() string {
	return GetEnv("OIDC_ISSUER_URL", "https://accounts.google.com")
}

func (Provider) GetClientID() string {
	return GetEnv("OIDC_CLIENT_ID", "")
}

func (Provider) GetClientSecret() string {
	return GetEnv("OIDC_CLIENT_SECRET", "")
}

func (Provider) GetProviderTimeout() time.Duration {
	return 10 * time.Second
}
