// Package auth provides registration, credential verification and the
// session cookie lifecycle.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/arkadem/startup-board/database/models"
	"github.com/arkadem/startup-board/database/repo/accounts"
)

var (
	ErrDuplicateUsername  = errors.New("username is already taken")
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrInvalidEmailFormat = errors.New("invalid email address")
	ErrMissingCredentials = errors.New("all fields are required")

	// ErrInvalidCredentials is returned uniformly for unknown email and
	// wrong password so the response does not allow account enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

var validate = validator.New()

// Service is the credential store front: registration and authentication.
type Service struct {
	accounts *accounts.Repository
}

func NewService(accountsRepo *accounts.Repository) *Service {
	return &Service{accounts: accountsRepo}
}

// Register validates the signup input and creates a user holding only the
// password hash.
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	if err := validate.Var(email, "required,email"); err != nil {
		return nil, ErrInvalidEmailFormat
	}

	taken, err := s.accounts.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, ErrDuplicateUsername
	}

	taken, err = s.accounts.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, ErrDuplicateEmail
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hash,
	}
	if err := s.accounts.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Uint("user_id", user.ID).Str("username", username).Msg("user registered")
	return user, nil
}

// Authenticate verifies email and password. Unknown emails still pay for
// a hash comparison to narrow the timing difference against wrong
// passwords; the error is the same either way.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.accounts.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, accounts.ErrUserNotFound) {
			_, _ = VerifyPassword(password, dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	ok, err := VerifyPassword(password, user.Password)
	if err != nil {
		return nil, fmt.Errorf("password comparison failed: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// dummyHash is compared against when the email is unknown.
var dummyHash = func() string {
	h, err := HashPassword("startup-board-dummy")
	if err != nil {
		panic(err)
	}
	return h
}()
