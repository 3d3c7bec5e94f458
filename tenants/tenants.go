package tenants

import (
	"net/url"
	"strings"

	"github.com/kingstalent/poster-gateway/internal/errors"
)

// Tenant is one of the two logical applications sharing the deployment.
// Values are static configuration and immutable at runtime.
type Tenant struct {
	ID          string // "studio" or "poster"
	HostPattern string // hostname that selects this tenant, e.g. "studio.kingstalent.com.tw"
	Origin      string // canonical origin, e.g. "https://studio.kingstalent.com.tw"
	PathPrefix  string // path namespace, e.g. "/studio"
	CookieName  string // session cookie namespace, e.g. "sb-studio"
}

// DefaultPath is the tenant's landing path, used whenever a redirect target
// cannot be trusted.
func (t *Tenant) DefaultPath() string {
	return t.PathPrefix
}

// CallbackPath is where the identity provider sends the user back.
func (t *Tenant) CallbackPath() string {
	return t.PathPrefix + "/auth/callback"
}

// LoginPath is the tenant-scoped login entry point.
func (t *Tenant) LoginPath() string {
	return t.PathPrefix + "/login"
}

// Registry resolves tenants from request hostnames and rewrites request paths
// into the resolved tenant's namespace. It is built once at startup.
type Registry struct {
	tenants []*Tenant
}

// NewRegistry builds the two-tenant registry. Order matters only for the
// unlikely case of overlapping host patterns; first match wins.
func NewRegistry(studio, poster *Tenant) *Registry {
	return &Registry{tenants: []*Tenant{studio, poster}}
}

// All returns the configured tenants.
func (reg *Registry) All() []*Tenant {
	return reg.tenants
}

// ByID looks a tenant up by its identifier.
func (reg *Registry) ByID(id string) (*Tenant, error) {
	for _, t := range reg.tenants {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrTenantNotFound, "tenants ByID %q", id)
}

// FromHost matches a request hostname against each tenant's host pattern.
// A hostname matches exactly, or as a subdomain-style prefix of the pattern's
// first label ("studio." / "studio-preview.example.com"). An unknown host is
// an error; callers must treat it as a routing no-op, never as a default
// tenant.
func (reg *Registry) FromHost(host string) (*Tenant, error) {
	hostname := stripPort(host)
	if hostname == "" {
		return nil, errors.Wrapf(errors.ErrTenantNotFound, "tenants FromHost empty host")
	}

	for _, t := range reg.tenants {
		if matchesHost(hostname, t) {
			return t, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrTenantNotFound, "tenants FromHost %q", hostname)
}

func matchesHost(hostname string, t *Tenant) bool {
	if strings.EqualFold(hostname, stripPort(t.HostPattern)) {
		return true
	}
	// Subdomain-prefix match: "studio." or "studio-staging." select studio.
	label := t.ID
	lower := strings.ToLower(hostname)
	return strings.HasPrefix(lower, label+".") || strings.HasPrefix(lower, label+"-")
}

func stripPort(host string) string {
	h, _, found := strings.Cut(host, ":")
	if found {
		return h
	}
	return host
}

// RewritePath maps a request path into the tenant's namespace. Paths already
// inside the namespace pass through unchanged; the bare root maps to the
// tenant's landing path.
func (reg *Registry) RewritePath(t *Tenant, path string) string {
	if strings.HasPrefix(path, t.PathPrefix) {
		return path
	}
	if path == "/" {
		return t.PathPrefix
	}
	return t.PathPrefix + path
}

// Excluded paths are never rewritten: static assets, API routes and the auth
// round-trip itself.
var excludedPrefixes = []string{
	"/api/",
	"/auth/",
	"/login",
	"/access-denied",
	"/static/",
	"/favicon",
}

var excludedExtensions = []string{
	".png", ".jpg", ".jpeg", ".svg", ".gif", ".ico", ".webp", ".css", ".js",
}

// Excluded reports whether a path must bypass tenant path rewriting.
// Tenant-prefixed auth routes count too, so /studio/login and
// /edit/auth/callback stay untouched.
func (reg *Registry) Excluded(path string) bool {
	for _, p := range excludedPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	for _, t := range reg.tenants {
		if strings.HasPrefix(path, t.PathPrefix+"/auth/") || path == t.LoginPath() {
			return true
		}
	}
	lower := strings.ToLower(path)
	for _, ext := range excludedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// SafeRedirect validates a client-supplied "return to" target against the
// tenant's own origin and path namespace. Anything that does not resolve to
// the tenant's origin with the tenant's path prefix collapses to the default
// landing path. The raw target is parsed relative to the tenant's configured
// origin, never the requesting origin, so an absolute attacker URL cannot
// validate against itself. Never fails.
func (t *Tenant) SafeRedirect(raw string) string {
	if raw == "" {
		return t.DefaultPath()
	}

	base, err := url.Parse(t.Origin)
	if err != nil {
		return t.DefaultPath()
	}
	u, err := base.Parse(raw)
	if err != nil {
		return t.DefaultPath()
	}

	if u.Scheme != base.Scheme || !strings.EqualFold(u.Host, base.Host) {
		return t.DefaultPath()
	}
	if !strings.HasPrefix(u.Path, t.PathPrefix) {
		return t.DefaultPath()
	}

	target := u.Path
	if u.RawQuery != "" {
		target += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		target += "#" + u.Fragment
	}
	return target
}
