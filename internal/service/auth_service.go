package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	apperrors "dashdeck/internal/errors"
	"dashdeck/internal/model"
	"dashdeck/internal/password"
	"dashdeck/internal/repository"
)

const minPasswordLength = 8

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService handles registration and login. It is stateless across
// requests; concurrent registrations racing on the same email are settled
// by the store's unique index, not by any locking here.
type AuthService interface {
	Register(ctx context.Context, email, plaintext string) (model.Identity, error)
	Login(ctx context.Context, email, plaintext string) (model.Identity, error)
}

type authService struct {
	users  repository.UserRepository
	hasher *password.Hasher
	log    *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, hasher *password.Hasher, log *slog.Logger) AuthService {
	return &authService{users: users, hasher: hasher, log: log}
}

// Register validates input, hashes the password, and inserts the user.
// Validation failures never touch storage. A duplicate email surfaces as
// ErrDuplicateEmail; there is deliberately no existence pre-check.
func (s *authService) Register(ctx context.Context, email, plaintext string) (model.Identity, error) {
	if email == "" || !emailRegex.MatchString(email) {
		return model.Identity{}, fmt.Errorf("%w: invalid email format", apperrors.ErrValidation)
	}
	if len(plaintext) < minPasswordLength {
		return model.Identity{}, fmt.Errorf("%w: password must be at least %d characters long", apperrors.ErrValidation, minPasswordLength)
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return model.Identity{}, err
	}

	user := &model.User{Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicateEmail) {
			s.log.Error("register: storage failure", "email", email, "error", err)
		}
		return model.Identity{}, err
	}

	s.log.Info("user registered", "id", user.ID, "email", user.Email)
	return user.Identity(), nil
}

// Login authenticates by email and password. Unknown email and wrong
// password both come back as ErrInvalidCredentials so the response does
// not leak which field was wrong.
func (s *authService) Login(ctx context.Context, email, plaintext string) (model.Identity, error) {
	if email == "" || plaintext == "" {
		return model.Identity{}, fmt.Errorf("%w: email and password are required", apperrors.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("login: storage failure", "email", email, "error", err)
		return model.Identity{}, err
	}
	if user == nil {
		return model.Identity{}, apperrors.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(plaintext, user.PasswordHash)
	if err != nil {
		// Corrupt stored hash. A storage-integrity problem, not a
		// user-facing detail.
		s.log.Error("login: stored hash unreadable", "id", user.ID, "error", err)
		return model.Identity{}, apperrors.NewStorageError("verify password hash", err)
	}
	if !ok {
		return model.Identity{}, apperrors.ErrInvalidCredentials
	}

	return user.Identity(), nil
}
