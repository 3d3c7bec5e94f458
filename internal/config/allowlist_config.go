package config

import "time"

// AllowlistConfig exposes the connection settings for the allow-list backing
// store (a Supabase PostgREST endpoint fronting the allowed_users table).
type AllowlistConfig interface {
	GetAllowlistURL() string
	GetAllowlistAPIKey() string
	GetAllowlistTimeout() time.Duration
}

type Allowlist struct{}

var _ AllowlistConfig = Allowlist{}

func (Allowlist) GetAllowlistURL() string {
	return GetEnv("SUPABASE_URL", "")
}

func (Allowlist) GetAllowlistAPIKey() string {
	return GetEnv("SUPABASE_ANON_KEY", "")
}

func (Allowlist) GetAllowlistTimeout() time.Duration {
	return 5 * time.Second
}
