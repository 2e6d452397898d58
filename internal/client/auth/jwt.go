// Package auth holds client-side token checks.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IsValidJwt reports whether token is structurally a JWT whose exp claim is
// still in the future. The signature is not checked: the client has no key,
// the server remains the authority.
func IsValidJwt(token string) bool {
	return IsValidJwtAt(token, time.Now())
}

// IsValidJwtAt is IsValidJwt with an explicit clock.
func IsValidJwtAt(token string, now time.Time) bool {
	if token == "" || strings.Count(token, ".") != 2 {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return now.Before(exp.Time)
}

// ExpiresAt returns the exp claim of token, if any.
func ExpiresAt(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
