// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkhasanov/appletd/internal/config"
	"github.com/dkhasanov/appletd/internal/logger"
	"github.com/dkhasanov/appletd/internal/store"
	"github.com/dkhasanov/appletd/internal/utils"
	"github.com/dkhasanov/appletd/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService registers and authenticates users and issues JWT tokens.
type AuthService struct {
	users store.UserRepository
	cfg   config.App
}

func NewAuthService(users store.UserRepository, cfg config.App) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

// RegisterUser creates a new account and returns a fresh token for it. The
// plaintext password is hashed with bcrypt before it reaches the store.
func (s *AuthService) RegisterUser(ctx context.Context, user models.User) (models.Token, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		return models.Token{}, ErrInvalidDataProvided
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Str("func", "RegisterUser").Err(err).Msg("cannot hash password")
		return models.Token{}, fmt.Errorf("error hashing password: %w", err)
	}
	user.Password = ""
	user.PasswordHash = string(hash)

	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return models.Token{}, err
	}

	return utils.GenerateJWTToken(s.cfg.TokenIssuer, created.UserID, s.cfg.TokenDuration, s.cfg.TokenSignKey)
}

// LoginUser verifies the login/password pair and returns a fresh token.
func (s *AuthService) LoginUser(ctx context.Context, user models.User) (models.Token, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		return models.Token{}, ErrInvalidDataProvided
	}

	found, err := s.users.FindUserByLogin(ctx, user.Login)
	if err != nil {
		return models.Token{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(user.Password)); err != nil {
		log.Debug().Str("func", "LoginUser").Str("login", user.Login).Msg("password mismatch")
		return models.Token{}, ErrWrongPassword
	}

	return utils.GenerateJWTToken(s.cfg.TokenIssuer, found.UserID, s.cfg.TokenDuration, s.cfg.TokenSignKey)
}

// ValidateToken checks a bearer token and returns the user ID it carries.
func (s *AuthService) ValidateToken(tokenString string) (uuid.UUID, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.cfg.TokenSignKey, s.cfg.TokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenIsExpired
		}
		return uuid.Nil, err
	}
	return token.UserID, nil
}
