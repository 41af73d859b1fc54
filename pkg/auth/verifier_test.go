package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signHS256(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func validClaims() Claims {
	return Claims{
		Email: "dev@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "0b8f5c7e-3a1d-4c55-9d7e-2f0d9f3c1a11",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestVerifyHS256(t *testing.T) {
	v := NewVerifier("top-secret", nil)

	claims, err := v.Verify(signHS256(t, "top-secret", validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "0b8f5c7e-3a1d-4c55-9d7e-2f0d9f3c1a11", claims.Subject)
	assert.Equal(t, "dev@example.com", claims.Email)

	_, err = v.Verify(signHS256(t, "other-secret", validClaims()))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredAndSubjectless(t *testing.T) {
	v := NewVerifier("top-secret", nil)

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	_, err := v.Verify(signHS256(t, "top-secret", expired))
	assert.ErrorIs(t, err, ErrInvalidToken)

	noSub := validClaims()
	noSub.Subject = ""
	_, err = v.Verify(signHS256(t, "top-secret", noSub))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRS256ThroughJWKS(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_ = json.NewEncoder(w).Encode(JWKS{Keys: []JSONWebKey{{
			Kid: "k1",
			Kty: "RSA",
			Alg: "RS256",
			N:   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}}})
	}))
	defer srv.Close()

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, validClaims())
	tok.Header["kid"] = "k1"
	signed, err := tok.SignedString(key)
	require.NoError(t, err)

	v := NewVerifier("", NewProvider(srv.URL, srv.Client()))
	claims, err := v.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", claims.Email)

	_, err = v.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

func TestVerifyRejectsUnconfiguredMethod(t *testing.T) {
	v := NewVerifier("", nil)
	_, err := v.Verify(signHS256(t, "whatever", validClaims()))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
