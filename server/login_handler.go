package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/kingstalent/poster-gateway/server/authstate"
)

// LoginHandler is the tenant-scoped login entry point (GET /login?redirect=).
// A valid session short-circuits straight to the sanitized redirect target;
// otherwise the OAuth round-trip starts.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, err := s.tenantFromRequest(r)
		if err != nil {
			http.Error(w, "Tenant not found", http.StatusNotFound)
			return
		}

		safeRedirect := tenant.SafeRedirect(r.URL.Query().Get("redirect"))

		if sess, err := s.sessions.Get(r, tenant); err == nil && sess.Valid() {
			http.Redirect(w, r, tenant.Origin+safeRedirect, http.StatusSeeOther)
			return
		}

		state := generateRandomString(32)
		nonce := generateRandomString(32)
		verifier := oauth2.GenerateVerifier()
		cb := callbackURL(tenant, safeRedirect)

		authURL, err := s.provider.AuthCodeURL(cb, state, nonce, verifier)
		if err != nil {
			// Missing provider configuration is an operator problem, never a
			// silent login with an empty callback.
			log.Error().Err(err).Str("tenant", tenant.ID).Msg("cannot build authorization URL")
			http.Error(w, "login is not available", http.StatusServiceUnavailable)
			return
		}

		if err := s.authState.Upsert(state, &authstate.LoginState{
			TenantID:     tenant.ID,
			CodeVerifier: verifier,
			Nonce:        nonce,
			Redirect:     safeRedirect,
			CallbackURL:  cb,
			CreatedAt:    time.Now(),
		}); err != nil {
			log.Error().Err(err).Str("tenant", tenant.ID).Msg("cannot persist login state")
			http.Error(w, "login is not available", http.StatusServiceUnavailable)
			return
		}

		s.metrics.LoginStarted(r.Context(), tenant.ID)
		http.Redirect(w, r, authURL, http.StatusSeeOther)
	}
}

// LogoutHandler clears the tenant's session cookie and lands on the tenant's
// default path.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, err := s.tenantFromRequest(r)
		if err != nil {
			http.Error(w, "Tenant not found", http.StatusNotFound)
			return
		}

		s.sessions.Clear(w, r, tenant)
		http.Redirect(w, r, tenant.DefaultPath(), http.StatusSeeOther)
	}
}
