package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/kingstalent/poster-gateway/allowlist"
	"github.com/kingstalent/poster-gateway/allowlist/repofake"
	"github.com/kingstalent/poster-gateway/idp"
	"github.com/kingstalent/poster-gateway/internal/config"
	"github.com/kingstalent/poster-gateway/server"
	"github.com/kingstalent/poster-gateway/server/authstate"
	"github.com/kingstalent/poster-gateway/session"
	"github.com/kingstalent/poster-gateway/tenants"
)

const allowedEmail = "a@b.com"

// testFixture holds the gateway with fake collaborators. The identity
// provider handle is deliberately unconfigured: code-flow tests exercise the
// failure paths, fragment-token and session tests need no provider at all.
type testFixture struct {
	gateway  *server.Server
	registry *tenants.Registry
	sessions *session.Store
	repo     *repofake.FakeAllowlistRepo
	states   *authstate.InMemoryRepo
	studio   *tenants.Tenant
	poster   *tenants.Tenant
}

func setupFixture(t *testing.T) *testFixture {
	t.Helper()

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

	registry := tenants.NewRegistry(studio, poster)
	sessions := session.NewStore("test-secret", 7*24*time.Hour)
	provider := idp.New("", "", "", time.Second)
	repo := repofake.NewFakeAllowlistRepo(allowedEmail)
	gate := allowlist.NewGate(repo, time.Second)
	states := authstate.NewInMemoryRepo(15 * time.Minute)

	return &testFixture{
		gateway:  server.New(config.New(), registry, sessions, provider, gate, states),
		registry: registry,
		sessions: sessions,
		repo:     repo,
		states:   states,
		studio:   studio,
		poster:   poster,
	}
}

// sessionCookie produces the Set-Cookie a logged-in browser would hold.
func (f *testFixture) sessionCookie(t *testing.T, tenant *tenants.Tenant, email string) *http.Cookie {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "https://"+tenant.HostPattern+"/", nil)
	err := f.sessions.Set(rec, req, tenant, session.Session{
		AccessToken: "at",
		Email:       email,
		Expiry:      time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return &http.Cookie{Name: cookies[0].Name, Value: cookies[0].Value}
}

// accessToken mints the kind of JWT the implicit flow forwards in the
// fragment.
func accessToken(t *testing.T, email string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("provider-secret"))
	require.NoError(t, err)
	return signed
}

func (f *testFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.gateway.ServeHTTP(rec, req)
	return rec
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
