package session

import (
	"net/http"
	"time"

	"github.com/kingstalent/poster-gateway/internal/errors"
	"github.com/kingstalent/poster-gateway/tenants"
)

// Store reads and writes tenant-scoped session cookies on the current HTTP
// exchange. All writes land on the response the caller is already building;
// cookies are never deferred to a later response.
type Store struct {
	codec  *Codec
	maxAge time.Duration
}

// NewStore creates a session store sealing cookies with the given secret.
func NewStore(secret string, maxAge time.Duration) *Store {
	return &Store{codec: NewCodec(secret), maxAge: maxAge}
}

// Get returns the tenant's session from the request, if present and valid.
func (st *Store) Get(r *http.Request, t *tenants.Tenant) (Session, error) {
	cookie, err := r.Cookie(t.CookieName)
	if err != nil {
		return Session{}, errors.Wrapf(errors.ErrSessionNotFound, "session Get %s", t.CookieName)
	}

	s, err := st.codec.Open(cookie.Value)
	if err != nil {
		return Session{}, err
	}
	if !s.Valid() {
		return Session{}, errors.Wrapf(errors.ErrSessionExpired, "session Get %s", t.CookieName)
	}
	return s, nil
}

// Set writes the session onto w under the tenant's cookie namespace.
func (st *Store) Set(w http.ResponseWriter, r *http.Request, t *tenants.Tenant, s Session) error {
	value, err := st.codec.Seal(s)
	if err != nil {
		return err
	}

	maxAge := int(st.maxAge.Seconds())
	if until := time.Until(s.Expiry); until < st.maxAge {
		maxAge = int(until.Seconds())
	}

	http.SetCookie(w, &http.Cookie{
		Name:     t.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
	return nil
}

// Clear expires the tenant's session cookie on w.
func (st *Store) Clear(w http.ResponseWriter, r *http.Request, t *tenants.Tenant) {
	http.SetCookie(w, &http.Cookie{
		Name:     t.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func isSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return r.Header.Get("X-Forwarded-Proto") == "https"
}
