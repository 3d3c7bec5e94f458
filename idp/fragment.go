package idp

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kingstalent/poster-gateway/internal/errors"
)

// IdentityFromTokens handles the legacy implicit flow, where the client
// forwards access/refresh tokens it received in the URL fragment. The access
// token is a provider-issued JWT; its email and expiry claims are extracted
// without signature verification, since the token came straight off the
// provider redirect and the allow-list check still gates access afterwards.
func IdentityFromTokens(accessToken, refreshToken string) (*Identity, error) {
	if accessToken == "" {
		return nil, errors.Wrapf(errors.ErrTokenInvalid, "idp IdentityFromTokens empty access token")
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return nil, errors.Wrapf(errors.ErrTokenInvalid, "idp IdentityFromTokens parse: %v", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, errors.Wrapf(errors.ErrTokenInvalid, "idp IdentityFromTokens no exp claim")
	}
	if time.Now().After(exp.Time) {
		return nil, errors.Wrapf(errors.ErrTokenExpired, "idp IdentityFromTokens expired at %s", exp.Time)
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, errors.Wrapf(errors.ErrTokenInvalid, "idp IdentityFromTokens no email claim")
	}

	return &Identity{
		Email:        email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Expiry:       exp.Time,
	}, nil
}
