package tenants_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kingstalent/poster-gateway/tenants"
)

func testRegistry() (*tenants.Registry, *tenants.Tenant, *tenants.Tenant) {
	studio := &tenants.Tenant{
		ID:          "studio",
		HostPattern: "studio.example.com",
		Origin:      "https://studio.example.com",
		PathPrefix:  "/studio",
		CookieName:  "sb-studio",
	}
	poster := &tenants.Tenant{
		ID:          "poster",
		HostPattern: "poster.example.com",
		Origin:      "https://poster.example.com",
		PathPrefix:  "/edit",
		CookieName:  "sb-poster",
	}
	return tenants.NewRegistry(studio, poster), studio, poster
}

func TestRegistry_FromHost(t *testing.T) {
	reg, studio, poster := testRegistry()

	t.Run("exact match", func(t *testing.T) {
		tenant, err := reg.FromHost("studio.example.com")
		require.NoError(t, err)
		require.Equal(t, studio.ID, tenant.ID)
	})

	t.Run("match ignores port", func(t *testing.T) {
		tenant, err := reg.FromHost("poster.example.com:8443")
		require.NoError(t, err)
		require.Equal(t, poster.ID, tenant.ID)
	})

	t.Run("subdomain prefix match", func(t *testing.T) {
		tenant, err := reg.FromHost("studio.other-domain.dev")
		require.NoError(t, err)
		require.Equal(t, studio.ID, tenant.ID)
	})

	t.Run("preview domain match", func(t *testing.T) {
		tenant, err := reg.FromHost("poster-preview-42.vercel.app")
		require.NoError(t, err)
		require.Equal(t, poster.ID, tenant.ID)
	})

	t.Run("unknown host is an error, never a default tenant", func(t *testing.T) {
		_, err := reg.FromHost("www.example.com")
		require.Error(t, err)
	})

	t.Run("empty host", func(t *testing.T) {
		_, err := reg.FromHost("")
		require.Error(t, err)
	})
}

func TestRegistry_RewritePath(t *testing.T) {
	reg, studio, poster := testRegistry()

	t.Run("root maps to landing path", func(t *testing.T) {
		require.Equal(t, "/edit", reg.RewritePath(poster, "/"))
	})

	t.Run("unprefixed path gains prefix", func(t *testing.T) {
		require.Equal(t, "/edit/course/5", reg.RewritePath(poster, "/course/5"))
	})

	t.Run("already prefixed passes through", func(t *testing.T) {
		require.Equal(t, "/studio/templates", reg.RewritePath(studio, "/studio/templates"))
	})
}

func TestRegistry_Excluded(t *testing.T) {
	reg, _, _ := testRegistry()

	excluded := []string{
		"/api/templates",
		"/auth/callback",
		"/login",
		"/access-denied",
		"/static/app.css",
		"/favicon.ico",
		"/logo.png",
		"/bundle.JS",
		"/studio/auth/callback",
		"/edit/auth/callback",
		"/studio/login",
		"/edit/login",
	}
	for _, path := range excluded {
		require.True(t, reg.Excluded(path), "expected %q to be excluded", path)
	}

	included := []string{
		"/",
		"/course/5",
		"/studio/templates",
		"/edit",
	}
	for _, path := range included {
		require.False(t, reg.Excluded(path), "expected %q not to be excluded", path)
	}
}

func TestTenant_SafeRedirect(t *testing.T) {
	_, studio, poster := testRegistry()

	t.Run("empty target collapses to default", func(t *testing.T) {
		require.Equal(t, "/edit", poster.SafeRedirect(""))
	})

	t.Run("relative in-namespace target passes verbatim", func(t *testing.T) {
		require.Equal(t, "/edit/course/5?tab=2#top", poster.SafeRedirect("/edit/course/5?tab=2#top"))
	})

	t.Run("absolute same-origin target passes", func(t *testing.T) {
		require.Equal(t, "/studio/templates", studio.SafeRedirect("https://studio.example.com/studio/templates"))
	})

	t.Run("foreign origin collapses to default", func(t *testing.T) {
		require.Equal(t, "/edit", poster.SafeRedirect("https://evil.example/x"))
	})

	t.Run("protocol-relative attacker URL collapses to default", func(t *testing.T) {
		require.Equal(t, "/edit", poster.SafeRedirect("//evil.example/edit/x"))
	})

	t.Run("cross-tenant path collapses to default", func(t *testing.T) {
		require.Equal(t, "/edit", poster.SafeRedirect("/studio/templates"))
	})

	t.Run("scheme downgrade collapses to default", func(t *testing.T) {
		require.Equal(t, "/edit", poster.SafeRedirect("http://poster.example.com/edit/x"))
	})

	t.Run("unparseable target collapses to default", func(t *testing.T) {
		require.Equal(t, "/studio", studio.SafeRedirect("://not a url"))
	})

	t.Run("never an external origin for any input", func(t *testing.T) {
		inputs := []string{
			"", "/", "/edit", "/studio", "https://evil.example",
			"javascript:alert(1)", "//evil", "\\\\evil", "/edit/../studio",
			"https://poster.example.com.evil.example/edit",
		}
		for _, raw := range inputs {
			got := poster.SafeRedirect(raw)
			require.True(t, len(got) > 0 && got[0] == '/', "input %q produced %q", raw, got)
			require.Truef(t, got == "/edit" || got[:5] == "/edit", "input %q escaped the namespace: %q", raw, got)
		}
	})
}
