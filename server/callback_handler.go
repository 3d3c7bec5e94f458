package server

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/kingstalent/poster-gateway/idp"
	"github.com/kingstalent/poster-gateway/session"
	"github.com/kingstalent/poster-gateway/tenants"
)

var errTenantStateMismatch = errors.New("login state belongs to another tenant")

// CallbackHandler receives the provider redirect and turns it into exactly
// one response carrying both the session cookies and the next Location.
//
// Credential precedence: authorization code, then implicit-fragment tokens
// forwarded by the client, then a pre-existing session. A replayed code fails
// at the exchange and falls through to the generic failure text; it never
// sets cookies and never redirects.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, err := s.tenantFromRequest(r)
		if err != nil {
			http.Error(w, "Tenant not found", http.StatusNotFound)
			return
		}

		identity, err := s.resolveIdentity(r, tenant)
		if err != nil {
			log.Warn().Err(err).Str("tenant", tenant.ID).Msg("callback could not establish identity")
			s.metrics.ExchangeFailed(r.Context(), tenant.ID)
			http.Error(w, genericLoginFailure, http.StatusBadRequest)
			return
		}

		// The allow-list decision strictly precedes any access-granting
		// redirect.
		decision := s.gate.Check(r.Context(), identity.Email)
		if !decision.Allowed {
			s.denyAccess(w, r, tenant, decision.Email)
			return
		}

		sess := session.Session{
			AccessToken:  identity.AccessToken,
			RefreshToken: identity.RefreshToken,
			Email:        decision.Email,
			Expiry:       identity.Expiry,
		}
		if err := s.sessions.Set(w, r, tenant, sess); err != nil {
			log.Error().Err(err).Str("tenant", tenant.ID).Msg("session cookie write failed")
			s.metrics.ExchangeFailed(r.Context(), tenant.ID)
			http.Error(w, genericLoginFailure, http.StatusInternalServerError)
			return
		}

		// The sanitized target never echoes code or state; those transient
		// parameters die here.
		safeRedirect := tenant.SafeRedirect(r.URL.Query().Get("redirect"))
		s.metrics.AccessGranted(r.Context(), tenant.ID)
		http.Redirect(w, r, tenant.Origin+safeRedirect, http.StatusFound)
	}
}

func (s *Server) resolveIdentity(r *http.Request, tenant *tenants.Tenant) (*idp.Identity, error) {
	query := r.URL.Query()

	if errParam := query.Get("error"); errParam != "" {
		log.Warn().
			Str("tenant", tenant.ID).
			Str("error", errParam).
			Str("error_description", query.Get("error_description")).
			Msg("provider returned an authorization error")
	}

	if code := query.Get("code"); code != "" {
		loginState, err := s.authState.Consume(query.Get("state"))
		if err != nil {
			return nil, err
		}
		if loginState.TenantID != tenant.ID {
			return nil, errTenantStateMismatch
		}
		return s.provider.Exchange(r.Context(), code, loginState.CodeVerifier, loginState.Nonce, loginState.CallbackURL)
	}

	// Implicit flow: the client page forwards the fragment tokens as query
	// parameters, since fragments never reach the server.
	if accessToken := query.Get("access_token"); accessToken != "" {
		return idp.IdentityFromTokens(accessToken, query.Get("refresh_token"))
	}

	sess, err := s.sessions.Get(r, tenant)
	if err != nil {
		return nil, err
	}
	return &idp.Identity{
		Email:        sess.Email,
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		Expiry:       sess.Expiry,
	}, nil
}

// denyAccess revokes the session and sends the user to the denial surface,
// all on this one response: the cleared cookies and the redirect travel
// together.
func (s *Server) denyAccess(w http.ResponseWriter, r *http.Request, tenant *tenants.Tenant, email string) {
	s.metrics.AccessDenied(r.Context(), tenant.ID)
	log.Info().Str("tenant", tenant.ID).Str("email", email).Msg("access denied by allow-list")

	s.sessions.Clear(w, r, tenant)

	reason := deniedReasonGeneric
	if email != "" {
		reason = deniedReasonPrefix + email
	}
	setDeniedReasonCookie(w, reason)

	http.Redirect(w, r, RouteAccessDenied, http.StatusSeeOther)
}
