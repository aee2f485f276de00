package session

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/starose-admin/internal/errors"
)

// TokenExpiry decodes the exp claim of a bearer token. The signature is not verified: the
// store only needs the expiry, and the API remains the authority on the token's validity.
func TokenExpiry(rawToken string) (time.Time, error) {
	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", apperrors.ErrTokenUndecodable, err)
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", apperrors.ErrTokenUndecodable, err)
	}
	if exp == nil {
		return time.Time{}, apperrors.ErrTokenMissingExpiry
	}
	return exp.Time, nil
}
