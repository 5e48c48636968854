package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/finsight-app/finsight/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the authentication operations.
type Service interface {
	// Register creates a new user and returns it with a freshly issued token.
	Register(ctx context.Context, email, username, password string) (*types.User, string, error)

	// Login authenticates by email or username and returns the user with a
	// freshly issued token.
	Login(ctx context.Context, identifier, password string) (*types.User, string, error)

	// Me returns the user behind a verified token's claims.
	Me(ctx context.Context, userID int64) (*types.User, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
	tokens *TokenService
}

func NewService(repo Repository, tokens *TokenService, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
		tokens: tokens,
	}
}

// Register validates the input, enforces email/username uniqueness (checked in
// that order), hashes the password and persists the user. The uniqueness
// lookups are an advisory fast path; the storage constraints remain the
// authoritative guard and surface the same conflict.
func (s *ServiceImpl) Register(ctx context.Context, email, username, password string) (*types.User, string, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)

	if email == "" || username == "" || password == "" {
		return nil, "", fmt.Errorf("%w: Email, username, and password are required", types.ErrValidation)
	}
	if len(password) < 6 {
		return nil, "", fmt.Errorf("%w: Password must be at least 6 characters long", types.ErrValidation)
	}

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, "", fmt.Errorf("%w: Email already registered", types.ErrConflict)
	} else if !errors.Is(err, types.ErrNotFound) {
		return nil, "", fmt.Errorf("register: email lookup failed: %w", err)
	}

	if _, err := s.repo.GetUserByUsername(ctx, username); err == nil {
		return nil, "", fmt.Errorf("%w: Username already taken", types.ErrConflict)
	} else if !errors.Is(err, types.ErrNotFound) {
		return nil, "", fmt.Errorf("register: username lookup failed: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("register: failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, email, username, string(hashedPassword))
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.InfoContext(ctx, "User registered", slog.Int64("user_id", user.ID), slog.String("username", user.Username))
	return user, token, nil
}

// Login verifies credentials against the stored hash. An unknown identifier
// and a wrong password both surface the same generic unauthorized error so the
// response never reveals whether the identifier exists.
func (s *ServiceImpl) Login(ctx context.Context, identifier, password string) (*types.User, string, error) {
	identifier = strings.TrimSpace(identifier)

	if identifier == "" || password == "" {
		return nil, "", fmt.Errorf("%w: Identifier and password are required", types.ErrValidation)
	}

	user, err := s.repo.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: Invalid credentials", types.ErrUnauthenticated)
		}
		return nil, "", fmt.Errorf("login: user lookup failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("%w: Invalid credentials", types.ErrUnauthenticated)
	}

	if !user.IsActive {
		return nil, "", fmt.Errorf("%w: User account is inactive", types.ErrUnauthenticated)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.InfoContext(ctx, "User logged in", slog.Int64("user_id", user.ID))
	return user, token, nil
}

// Me re-reads the user behind the verified claims, so a deactivated or deleted
// account stops resolving even while its token is still unexpired.
func (s *ServiceImpl) Me(ctx context.Context, userID int64) (*types.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, fmt.Errorf("%w: User not found", types.ErrNotFound)
		}
		return nil, fmt.Errorf("me: user lookup failed: %w", err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: User not found", types.ErrNotFound)
	}
	return user, nil
}
