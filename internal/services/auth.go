// Package services holds the authorization core of the catalog: identity,
// entity resolution, ownership and uniqueness rules applied before any
// mutation reaches storage.
package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"CATALOG_BACK-END/internal/apperr"
	"CATALOG_BACK-END/internal/dto"
	"CATALOG_BACK-END/internal/logging"
	"CATALOG_BACK-END/internal/models"
	"CATALOG_BACK-END/internal/storage"
	"CATALOG_BACK-END/internal/utils"
)

// TokenIssuer mints access tokens for a user id.
type TokenIssuer interface {
	GenerateToken(userID int64) (string, error)
}

// Validator checks a request payload and returns an apperr validation error.
type Validator interface {
	Struct(payload any) error
}

// AuthService registers and authenticates users.
type AuthService struct {
	users    storage.UserRepository
	tokens   TokenIssuer
	validate Validator
	log      logging.Logger
}

func NewAuthService(users storage.UserRepository, tokens TokenIssuer, validate Validator, log logging.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, validate: validate, log: log}
}

// Register creates an account and returns an access token for it.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (string, error) {
	if err := s.validate.Struct(req); err != nil {
		return "", err
	}

	if _, err := s.users.GetUserByEmail(ctx, req.Email); err == nil {
		return "", apperr.AccountAlreadyRegistered()
	} else if !errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("lookup user: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperr.Validation("password: must be at most 72 bytes")
		}
		return "", err
	}

	user, err := s.users.CreateUser(ctx, req.Email, hash)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return "", apperr.AccountAlreadyRegistered()
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return s.issue(user)
}

// Login checks credentials and returns an access token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (string, error) {
	if err := s.validate.Struct(req); err != nil {
		return "", err
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", apperr.InvalidLoginCredentials()
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		s.log.Warn(ctx, "login rejected", "user_id", user.ID)
		return "", apperr.InvalidLoginCredentials()
	}

	return s.issue(user)
}

// LoginExternal signs in a user whose email was verified by an external
// identity provider, creating the account on first use.
func (s *AuthService) LoginExternal(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return s.issue(user)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("lookup user: %w", err)
	}

	secret, err := utils.RandomPassword()
	if err != nil {
		return "", err
	}
	hash, err := utils.HashPassword(secret)
	if err != nil {
		return "", err
	}

	user, err = s.users.CreateUser(ctx, email, hash)
	if errors.Is(err, storage.ErrAlreadyExists) {
		// registered concurrently; use the winner
		user, err = s.users.GetUserByEmail(ctx, email)
	}
	if err != nil {
		return "", fmt.Errorf("create external user: %w", err)
	}

	s.log.Info(ctx, "user registered via external provider", "user_id", user.ID)
	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (string, error) {
	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}
