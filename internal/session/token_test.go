package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestPeekToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signToken(t, jwt.MapClaims{
		"sub":   "u1",
		"email": "amira@example.com",
		"role":  "manager",
		"exp":   exp.Unix(),
	})

	claims, ok := PeekToken(token)
	require.True(t, ok)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "amira@example.com", claims.Email)
	assert.Equal(t, "manager", claims.Role)
	assert.True(t, claims.Expiry.Equal(exp))
}

func TestPeekTokenGarbage(t *testing.T) {
	_, ok := PeekToken("not-a-jwt")
	assert.False(t, ok)
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()

	live := signToken(t, jwt.MapClaims{"sub": "u1", "exp": now.Add(time.Hour).Unix()})
	assert.False(t, TokenExpired(live, now))

	stale := signToken(t, jwt.MapClaims{"sub": "u1", "exp": now.Add(-time.Hour).Unix()})
	assert.True(t, TokenExpired(stale, now))

	// No exp claim: the server is the authority, treat as live.
	noExp := signToken(t, jwt.MapClaims{"sub": "u1"})
	assert.False(t, TokenExpired(noExp, now))

	assert.False(t, TokenExpired("garbage", now))
}
