package config

import "time"

type SecurityConfig interface {
	GetCookieSecret() string
	GetMaxSessionAge() time.Duration
	GetLoginStateTTL() time.Duration
	GetAuthRateLimit() float64
	GetAuthRateBurst() int
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetCookieSecret() string {
	return GetEnv("COOKIE_SECRET", "")
}

func (Security) GetMaxSessionAge() time.Duration {
	return 7 * 24 * time.Hour
}

// GetLoginStateTTL bounds how long a login round-trip may take before the
// state parameter is considered stale.
func (Security) GetLoginStateTTL() time.Duration {
	return 15 * time.Minute
}

func (Security) GetAuthRateLimit() float64 {
	return 10 // requests per second across the auth endpoints
}

func (Security) GetAuthRateBurst() int {
	return 20
}
