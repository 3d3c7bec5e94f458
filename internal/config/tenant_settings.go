package config

// TenantSettings exposes the per-tenant routing configuration. Both tenants are
// static; only their hostnames and origins vary between deployments.
type TenantSettings interface {
	GetStudioHost() string
	GetStudioOrigin() string
	GetPosterHost() string
	GetPosterOrigin() string
}

type Tenants struct{}

var _ TenantSettings = Tenants{}

func (Tenants) GetStudioHost() string {
	return GetEnv("STUDIO_HOST", "studio.kingstalent.com.tw")
}

func (Tenants) GetStudioOrigin() string {
	return GetEnv("STUDIO_ORIGIN", "https://studio.kingstalent.com.tw")
}

func (Tenants) GetPosterHost() string {
	return GetEnv("POSTER_HOST", "poster.kingstalent.com.tw")
}

func (Tenants) GetPosterOrigin() string {
	return GetEnv("POSTER_ORIGIN", "https://poster.kingstalent.com.tw")
}
