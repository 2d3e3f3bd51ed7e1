package services

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

// AuthService checks the shared admin passphrase.
type AuthService struct {
	hash   []byte
	Logger echo.Logger
}

// NewAuthService hashes passphrase once; only the hash is kept.
func NewAuthService(passphrase string, logger echo.Logger) (*AuthService, error) {
	if passphrase == "" {
		return nil, errors.New("admin passphrase is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New("auth")
	}
	return &AuthService{hash: hash, Logger: logger}, nil
}

// Login returns ErrInvalidPassphrase unless passphrase matches.
func (s *AuthService) Login(ctx context.Context, passphrase string) error {
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(passphrase)); err != nil {
		s.Logger.Warnj(log.JSON{"op": "admin_login", "result": "rejected"})
		return ErrInvalidPassphrase
	}
	s.Logger.Infoj(log.JSON{"op": "admin_login", "result": "ok"})
	return nil
}
