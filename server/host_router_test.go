package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kingstalent/poster-gateway/server"
)

func TestHostRouterMiddleware(t *testing.T) {
	f := setupFixture(t)

	// probe records what the inner handler would see after routing.
	var seenPath string
	var seenTenantID string
	probe := func(w http.ResponseWriter, r *http.Request) {
		seenPath = r.URL.Path
		seenTenantID = ""
		if tenant := server.TenantFromContext(r.Context()); tenant != nil {
			seenTenantID = tenant.ID
		}
	}
	routed := f.gateway.HostRouterMiddleware(probe)

	t.Run("poster root rewrites to /edit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "https://poster.example.com/", nil)
		routed(httptest.NewRecorder(), req)
		require.Equal(t, "/edit", seenPath)
		require.Equal(t, "poster", seenTenantID)
	})

	t.Run("poster deep path gains prefix", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "https://poster.example.com/course/5", nil)
		routed(httptest.NewRecorder(), req)
		require.Equal(t, "/edit/course/5", seenPath)
	})

	t.Run("already prefixed studio path passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "https://studio.example.com/studio/templates", nil)
		routed(httptest.NewRecorder(), req)
		require.Equal(t, "/studio/templates", seenPath)
		require.Equal(t, "studio", seenTenantID)
	})

	t.Run("auth routes are never rewritten", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "https://poster.example.com/auth/callback?code=x", nil)
		routed(httptest.NewRecorder(), req)
		require.Equal(t, "/auth/callback", seenPath)
		require.Equal(t, "poster", seenTenantID)
	})

	t.Run("static assets are never rewritten", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "https://poster.example.com/logo.png", nil)
		routed(httptest.NewRecorder(), req)
		require.Equal(t, "/logo.png", seenPath)
	})

	t.Run("unknown host passes through without a tenant", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "https://preview.example.org/anything", nil)
		routed(httptest.NewRecorder(), req)
		require.Equal(t, "/anything", seenPath)
		require.Empty(t, seenTenantID)
	})
}
