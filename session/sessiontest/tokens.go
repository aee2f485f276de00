// Package sessiontest builds signed bearer tokens and session records for tests.
package sessiontest

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/starose-admin/session"
	"github.com/stretchr/testify/require"
)

const signingSecret = "test-secret"

// Token returns an HS256 token whose exp claim is exp.
func Token(t *testing.T, exp time.Time) string {
	t.Helper()
	return TokenWithClaims(t, jwtlib.MapClaims{
		"sub": "user-1",
		"iat": exp.Add(-time.Hour).Unix(),
		"exp": exp.Unix(),
	})
}

// TokenWithClaims signs arbitrary claims.
func TokenWithClaims(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(signingSecret))
	require.NoError(t, err)
	return signed
}

// Session returns an admin session whose token expires at exp.
func Session(t *testing.T, exp time.Time) session.Session {
	t.Helper()
	return session.Session{
		ID:    "user-1",
		Email: "admin@starose.test",
		Role:  "admin",
		Token: Token(t, exp),
	}
}
