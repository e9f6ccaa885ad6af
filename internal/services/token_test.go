package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	token, err := issuer.Issue("sess-1", "u1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "u1", claims.Subject)
}

func TestTokenIssuer_RejectsWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("one").Issue("sess-1", "u1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = NewTokenIssuer("two").Parse(token)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	token, err := issuer.Issue("sess-1", "u1", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenIssuer_RequiresSessionID(t *testing.T) {
	claims := jwt.RegisteredClaims{Subject: "u1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewTokenIssuer("test-secret").Parse(token)
	assert.Error(t, err)
}
