package config

type Config interface {
	EnvConfig
	TenantSettings
	ProviderConfig
	AllowlistConfig
	SecurityConfig
}

type mainConfig struct {
	EnvVars
	Tenants
	Provider
	Allowlist
	Security
}

func New() Config {
	return mainConfig{}
}
