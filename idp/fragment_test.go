package idp_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/kingstalent/poster-gateway/idp"
)

func signedAccessToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("provider-secret"))
	require.NoError(t, err)
	return signed
}

func TestIdentityFromTokens(t *testing.T) {
	t.Run("valid token yields identity", func(t *testing.T) {
		exp := time.Now().Add(time.Hour)
		access := signedAccessToken(t, jwt.MapClaims{
			"email": "a@b.com",
			"exp":   exp.Unix(),
		})

		identity, err := idp.IdentityFromTokens(access, "refresh-1")
		require.NoError(t, err)
		require.Equal(t, "a@b.com", identity.Email)
		require.Equal(t, access, identity.AccessToken)
		require.Equal(t, "refresh-1", identity.RefreshToken)
		require.WithinDuration(t, exp, identity.Expiry, time.Second)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		access := signedAccessToken(t, jwt.MapClaims{
			"email": "a@b.com",
			"exp":   time.Now().Add(-time.Minute).Unix(),
		})

		_, err := idp.IdentityFromTokens(access, "")
		require.Error(t, err)
	})

	t.Run("missing email rejected", func(t *testing.T) {
		access := signedAccessToken(t, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := idp.IdentityFromTokens(access, "")
		require.Error(t, err)
	})

	t.Run("missing exp rejected", func(t *testing.T) {
		access := signedAccessToken(t, jwt.MapClaims{"email": "a@b.com"})

		_, err := idp.IdentityFromTokens(access, "")
		require.Error(t, err)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := idp.IdentityFromTokens("not-a-jwt", "")
		require.Error(t, err)

		_, err = idp.IdentityFromTokens("", "")
		require.Error(t, err)
	})
}
