package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is what the client can read out of its own bearer token. The
// signature is never verified here; the backend remains the authority and
// these fields drive UI affordance only.
type TokenClaims struct {
	Subject string
	Email   string
	Role    string
	Expiry  time.Time
}

// PeekToken decodes the token claims without verification.
func PeekToken(token string) (*TokenClaims, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, false
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}

	out := &TokenClaims{}
	out.Subject, _ = claims["sub"].(string)
	out.Email, _ = claims["email"].(string)
	out.Role, _ = claims["role"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.Expiry = exp.Time
	}
	return out, true
}

// TokenExpired reports whether the token carries an exp claim in the past.
// Tokens without a readable exp are treated as live; the server will reject
// them with a 401 if not.
func TokenExpired(token string, now time.Time) bool {
	claims, ok := PeekToken(token)
	if !ok || claims.Expiry.IsZero() {
		return false
	}
	return claims.Expiry.Before(now)
}
