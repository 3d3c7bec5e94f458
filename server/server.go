package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/kingstalent/poster-gateway/allowlist"
	"github.com/kingstalent/poster-gateway/idp"
	"github.com/kingstalent/poster-gateway/internal/config"
	"github.com/kingstalent/poster-gateway/internal/metrics"
	"github.com/kingstalent/poster-gateway/server/authstate"
	"github.com/kingstalent/poster-gateway/session"
	"github.com/kingstalent/poster-gateway/tenants"
)

// Server is the authentication gateway fronting the Studio and Poster
// applications. It owns host-based tenant routing, the OAuth login
// round-trip, session cookies and allow-list enforcement; the applications
// themselves are static assets it merely delivers.
type Server struct {
	env    string
	mux    *http.ServeMux
	routes []string

	config    config.Config
	registry  *tenants.Registry
	sessions  *session.Store
	provider  *idp.Provider
	gate      *allowlist.Gate
	authState authstate.Repo
	metrics   *metrics.Metrics

	authLimiter *rate.Limiter
}

// New wires the gateway together. Every collaborator is explicit; there is no
// module-level client state anywhere in the process.
func New(cfg config.Config, registry *tenants.Registry, sessions *session.Store,
	provider *idp.Provider, gate *allowlist.Gate, authState authstate.Repo) *Server {

	s := &Server{
		env:         cfg.GetEnv(),
		mux:         http.NewServeMux(),
		config:      cfg,
		registry:    registry,
		sessions:    sessions,
		provider:    provider,
		gate:        gate,
		authState:   authState,
		metrics:     metrics.New(),
		authLimiter: rate.NewLimiter(rate.Limit(cfg.GetAuthRateLimit()), cfg.GetAuthRateBurst()),
	}

	s.initRoutes()
	s.logRoutes()

	return s
}

// ServeHTTP runs the host router first, then dispatches on the (possibly
// rewritten) path.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.HostRouterMiddleware(s.mux.ServeHTTP)(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Debug().Str("method", parts[0]).Str("path", parts[1]).Msg("route registered")
		} else {
			log.Debug().Str("path", parts[0]).Msg("route registered")
		}
	}
}

// tenantFromRequest resolves the tenant for a handler: the host router has
// usually put it on the context already, otherwise fall back to the Host
// header. Handlers on auth routes cannot proceed without one.
func (s *Server) tenantFromRequest(r *http.Request) (*tenants.Tenant, error) {
	if t := TenantFromContext(r.Context()); t != nil {
		return t, nil
	}
	t, err := s.registry.FromHost(r.Host)
	if err != nil {
		return nil, fmt.Errorf("[server tenantFromRequest] %w", err)
	}
	return t, nil
}
