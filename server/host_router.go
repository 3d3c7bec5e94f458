package server

import (
	"context"
	"net/http"

	"github.com/kingstalent/poster-gateway/tenants"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyTenant stores the tenant resolved from the request host
const ContextKeyTenant ContextKey = "tenant"

// TenantFromContext returns the tenant the host router resolved, or nil when
// the request host matched no tenant.
func TenantFromContext(ctx context.Context) *tenants.Tenant {
	t, _ := ctx.Value(ContextKeyTenant).(*tenants.Tenant)
	return t
}

// HostRouterMiddleware maps the request host to a tenant and rewrites the
// path into that tenant's namespace. Excluded paths (static assets, API
// routes, the auth round-trip itself) pass untouched, as does any request
// from a host that matches no tenant: an unknown preview domain is a routing
// no-op, never a forced default tenant. The router only rewrites; it touches
// no cookies and consults no auth state.
func (s *Server) HostRouterMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, err := s.registry.FromHost(r.Host)
		if err != nil {
			next(w, r)
			return
		}

		r = r.WithContext(context.WithValue(r.Context(), ContextKeyTenant, tenant))

		if !s.registry.Excluded(r.URL.Path) {
			rewritten := s.registry.RewritePath(tenant, r.URL.Path)
			if rewritten != r.URL.Path {
				r2 := r.Clone(r.Context())
				r2.URL.Path = rewritten
				r = r2
			}
		}

		next(w, r)
	}
}
