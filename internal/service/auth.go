package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/vietanh2810/isk-lottery/internal/domain"
)

var (
	ErrOperatorNotFound = errors.New("operator not found")
	ErrWrongPassword    = errors.New("wrong password")
)

// AuthService checks operator credentials against the configured account.
type AuthService struct {
	username     string
	passwordHash string
}

func NewAuthService(username, passwordHash string) *AuthService {
	return &AuthService{
		username:     username,
		passwordHash: passwordHash,
	}
}

func (s *AuthService) Login(_ context.Context, username, password string) (domain.Operator, error) {
	if s.passwordHash == "" || subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) != 1 {
		return domain.Operator{}, ErrOperatorNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return domain.Operator{}, ErrWrongPassword
	}

	return domain.Operator{Username: s.username}, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	return string(hash), nil
}
