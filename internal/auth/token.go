// Package auth derives the signed-in session from the stored bearer token
// and decides which routes need one.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiryGrace treats a token as expired slightly before its exp claim.
const ExpiryGrace = 30 * time.Second

var (
	ErrMalformedToken = errors.New("malformed token")
	ErrTokenExpired   = errors.New("token expired")
)

// Claims is the part of the token payload the client reads. The signature is
// never checked here; the backend remains the authority.
type Claims struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// Expired reports whether the token is past exp, minus ExpiryGrace, at now.
// A token without exp counts as expired.
func (c Claims) Expired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return true
	}
	return !c.ExpiresAt.After(now.Add(ExpiryGrace))
}

// DecodeToken reads the payload of a JWT without verifying it.
func DecodeToken(token string) (Claims, error) {
	var claims Claims
	token = strings.TrimSpace(token)
	if token == "" {
		return claims, ErrMalformedToken
	}

	mapClaims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mapClaims); err != nil {
		return claims, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	claims.UserID = claimString(mapClaims, "id")
	claims.Email = claimString(mapClaims, "email")
	return claims, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprint(v)
	}
}
