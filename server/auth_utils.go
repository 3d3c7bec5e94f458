package server

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/url"

	"github.com/kingstalent/poster-gateway/tenants"
)

const (
	// deniedReasonCookie carries the (non-secret) denial reason from the
	// callback to the access-denied page.
	deniedReasonCookie = "denied_reason"

	// genericLoginFailure is the only text a failed exchange ever shows.
	// Provider error internals stay in the logs.
	genericLoginFailure = "登入失敗，請重新登入再試一次"
)

// generateRandomString creates a random base64url string
func generateRandomString(length int) string {
	b := make([]byte, length)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// callbackURL builds the provider redirect target for a tenant. It is always
// derived from the tenant's configured origin, never from the request's Host
// header, so an attacker-controlled host cannot hijack the OAuth redirect.
func callbackURL(t *tenants.Tenant, safeRedirect string) string {
	return t.Origin + t.CallbackPath() + "?redirect=" + url.QueryEscape(safeRedirect)
}

func setDeniedReasonCookie(w http.ResponseWriter, reason string) {
	http.SetCookie(w, &http.Cookie{
		Name:   deniedReasonCookie,
		Value:  url.QueryEscape(reason),
		Path:   "/",
		MaxAge: 60,
	})
}

func readDeniedReasonCookie(r *http.Request) string {
	cookie, err := r.Cookie(deniedReasonCookie)
	if err != nil {
		return ""
	}
	reason, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return reason
}

func clearDeniedReasonCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   deniedReasonCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}
