package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ukydev/scooter-console/internal/models"
)

var (
	ErrNoToken      = errors.New("no token")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// BearerHeader formats a token for the Authorization header. Stored tokens
// may carry stray whitespace, which the services reject.
func BearerHeader(token string) string {
	return "Bearer " + strings.TrimSpace(token)
}

// Inspect decodes the claims of a JWT without verifying its signature. The
// console never holds the signing key; the auth service stays the authority
// and this is only used to skip a round trip for tokens that are already expired.
func Inspect(tokenString string) (*models.Claims, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, ErrNoToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrInvalidToken
	}

	out := &models.Claims{}
	out.Subject, _ = claims.GetSubject()
	if out.Subject == "" {
		// the auth service puts the admin id under its own key
		for _, key := range []string{"id", "_id", "adminId", "user_id"} {
			if v, ok := claims[key].(string); ok && v != "" {
				out.Subject = v
				break
			}
		}
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		out.Role = models.Role(role)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, ErrInvalidToken
	}
	if exp != nil {
		out.Exp = exp.Unix()
	}

	return out, nil
}

// Expired reports whether the claims are past their expiry at now. Tokens
// without an expiry never expire locally.
func Expired(claims *models.Claims, now time.Time) bool {
	if claims == nil || claims.Exp == 0 {
		return false
	}
	return !now.Before(time.Unix(claims.Exp, 0))
}

// CheckLocal inspects a token and reports ErrExpiredToken when it has
// already expired. Tokens that are not JWTs pass through unchecked.
func CheckLocal(token string, now time.Time) error {
	if strings.TrimSpace(token) == "" {
		return ErrNoToken
	}
	claims, err := Inspect(token)
	if err != nil {
		return nil
	}
	if Expired(claims, now) {
		return ErrExpiredToken
	}
	return nil
}
