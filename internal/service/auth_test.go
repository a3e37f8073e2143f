package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	svc := NewAuthService("operator", hash)

	operator, err := svc.Login(context.Background(), "operator", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "operator", operator.Username)

	_, err = svc.Login(context.Background(), "operator", "battery staple")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(context.Background(), "admin", "correct horse")
	assert.ErrorIs(t, err, ErrOperatorNotFound)
}

func TestAuthService_LoginWithoutConfiguredPassword(t *testing.T) {
	_, err := NewAuthService("operator", "").Login(context.Background(), "operator", "")
	assert.ErrorIs(t, err, ErrOperatorNotFound)
}
