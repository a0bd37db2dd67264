// Package services contains the server-side business logic. This file
// implements UserService: registration, login, and resolving the identity
// behind a verified token.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/inkwell-blog/inkwell/internal/common"
	"github.com/inkwell-blog/inkwell/internal/server/auth"
	"github.com/inkwell-blog/inkwell/internal/server/config"
	"github.com/inkwell-blog/inkwell/internal/server/models"
	"github.com/inkwell-blog/inkwell/internal/server/repositories/repomanager"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserService provides authentication-related operations:
// - Register: validate input, create the user, mint a token
// - Login: verify credentials and mint a token
// - GetByID: resolve the identity referenced by a verified token
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
	bcryptCost    int
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		bcryptCost:    cfg.BcryptCost,
	}
}

// Register validates the input in a fixed order, rejects duplicate email or
// username with a message naming the colliding field, and returns the created
// user together with a fresh bearer token.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	if username == "" || email == "" || password == "" {
		return nil, "", common.Validation("Please add all fields")
	}
	if utf8.RuneCountInString(username) < 3 {
		return nil, "", common.Validation("Username must be at least 3 characters")
	}
	if !emailRe.MatchString(email) {
		return nil, "", common.Validation("Please provide a valid email address")
	}
	if utf8.RuneCountInString(password) < 6 {
		return nil, "", common.Validation("Password must be at least 6 characters")
	}

	repo := s.repomanager.Users(s.db)

	// Email collision is reported before username collision.
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, "", common.ErrEmailTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, "", fmt.Errorf("error checking email: %w", err)
	}
	if _, err := repo.GetByUsername(ctx, username); err == nil {
		return nil, "", common.ErrUsernameTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, "", fmt.Errorf("error checking username: %w", err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("error hashing password: %w", err)
	}

	user, err := repo.Create(ctx, &models.User{Username: username, Email: email, PasswordHash: hash})
	if err != nil {
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login verifies the credentials and returns the user with a fresh token.
// Unknown email and wrong password both map to common.ErrInvalidCredentials
// so the response cannot be used to probe which emails are registered.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", common.Validation("Please provide email and password")
	}
	if !emailRe.MatchString(email) {
		return nil, "", common.Validation("Please provide a valid email address")
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("error looking up user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", common.ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// GetByID resolves a user by its reference. Used by the auth guard and the
// /me endpoint; returns common.ErrNotFound when the identity is gone.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

func (s *UserService) generateToken(userID string) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", common.ErrInternal
	}
	return token, nil
}
