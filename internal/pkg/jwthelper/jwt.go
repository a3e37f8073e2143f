package jwthelper

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "isk-lottery"

var (
	ErrEmptySigningKey = errors.New("empty signing key")
	ErrInvalidToken    = errors.New("invalid token")
)

// Claims identify an operator session. The user agent pins the token to the
// client that logged in.
type Claims struct {
	jwt.RegisteredClaims
	UserAgent string `json:"ua,omitempty"`
}

func GenerateToken(key []byte, subject, userAgent string, ttl time.Duration) (string, error) {
	if len(key) == 0 {
		return "", ErrEmptySigningKey
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserAgent: userAgent,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("token.SignedString -> %w", err)
	}

	return signed, nil
}

// ParseToken verifies the signature, issuer and expiry of raw.
func ParseToken(key []byte, raw string) (*Claims, error) {
	if len(key) == 0 {
		return nil, ErrEmptySigningKey
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
