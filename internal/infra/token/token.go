// Package token inspects bearer access tokens for display purposes. Claims
// are decoded without verification: the server remains the sole authority on
// token validity, which is discovered lazily on the first rejected API call.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expiry returns the expiry time of a JWT access token. ok is false when the
// token is not a JWT or carries no exp claim; opaque tokens are fine, they
// just have nothing to display.
func Expiry(raw string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// IsExpired reports whether the token's exp claim is in the past. Tokens
// without a readable exp claim are never reported expired.
func IsExpired(raw string, now time.Time) bool {
	exp, ok := Expiry(raw)
	if !ok {
		return false
	}
	return exp.Before(now)
}
