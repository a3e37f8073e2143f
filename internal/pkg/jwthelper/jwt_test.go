package jwthelper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var key = []byte("test-signing-key")

func TestGenerateAndParse(t *testing.T) {
	token, err := GenerateToken(key, "operator", "curl/8.0", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Subject)
	assert.Equal(t, "curl/8.0", claims.UserAgent)
	assert.Equal(t, issuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestParseToken_Rejects(t *testing.T) {
	valid, err := GenerateToken(key, "operator", "", time.Hour)
	require.NoError(t, err)

	expired, err := GenerateToken(key, "operator", "", -time.Minute)
	require.NoError(t, err)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "operator",
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(key)
	require.NoError(t, err)

	tests := []struct {
		name string
		key  []byte
		raw  string
	}{
		{name: "wrong key", key: []byte("other-key"), raw: valid},
		{name: "expired", key: key, raw: expired},
		{name: "foreign issuer", key: key, raw: foreign},
		{name: "garbage", key: key, raw: "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.key, tt.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestEmptyKey(t *testing.T) {
	_, err := GenerateToken(nil, "operator", "", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySigningKey)

	_, err = ParseToken(nil, "x")
	assert.ErrorIs(t, err, ErrEmptySigningKey)
}
