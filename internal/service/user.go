package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/auth"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/domain"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/repository"
)

// UserService provides business logic for accounts and login sessions
type UserService interface {
	Signup(ctx context.Context, input SignupInput) (*User, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
	GetByToken(ctx context.Context, token string) (*User, error)
	Logout(ctx context.Context, token string) error
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// User is the account view model. It never carries the password hash.
type User struct {
	ID        int64
	Name      string
	Email     string
	ImageUrl  string
	CreatedAt time.Time
}

// SignupInput carries new account fields
type SignupInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	ImageUrl string `validate:"omitempty,url"`
}

type userService struct {
	repo       repository.Querier
	sessionTTL time.Duration
}

// NewUserService creates a new UserService instance
func NewUserService(repo repository.Querier, sessionTTL time.Duration) (UserService, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if sessionTTL <= 0 {
		return nil, fmt.Errorf("session TTL must be positive")
	}

	return &userService{
		repo:       repo,
		sessionTTL: sessionTTL,
	}, nil
}

// Signup creates a new account with a bcrypt-hashed password.
// A duplicate email returns ECONFLICT.
func (s *userService) Signup(ctx context.Context, input SignupInput) (*User, error) {
	const op = "user.signup"

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validateStruct(input, op); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetUserByEmail(ctx, input.Email); err == nil {
		return nil, domain.Conflict(op, "An account with this email already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, domain.Invalid(op, auth.ErrPasswordTooShort.Error())
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	row, err := s.repo.CreateUser(ctx, repository.CreateUserParams{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		ImageUrl:     input.ImageUrl,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return toUser(row), nil
}

// Login verifies credentials and issues a session token.
// Wrong email and wrong password both return EUNAUTHORIZED.
func (s *userService) Login(ctx context.Context, email, password string) (*User, string, error) {
	const op = "user.login"

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domain.Invalid(op, "Email and password are required")
	}

	row, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", domain.Unauthorized(op, "Invalid email or password")
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := auth.VerifyPassword(password, row.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, "", domain.Unauthorized(op, "Invalid email or password")
		}
		return nil, "", fmt.Errorf("failed to verify password: %w", err)
	}

	token, err := GenerateSessionToken()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate session token: %w", err)
	}

	if _, err := s.repo.CreateSession(ctx, repository.CreateSessionParams{
		UserID:    row.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}); err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	return toUser(row), token, nil
}

// GetByToken resolves a session token to its account.
// Unknown or expired tokens return EUNAUTHORIZED.
func (s *userService) GetByToken(ctx context.Context, token string) (*User, error) {
	const op = "user.get_by_token"

	if token == "" {
		return nil, domain.Unauthorized(op, "Session token is required")
	}

	row, err := s.repo.GetUserBySessionToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.Unauthorized(op, "Invalid or expired session")
		}
		return nil, fmt.Errorf("failed to resolve session token: %w", err)
	}

	return toUser(row), nil
}

// Logout discards the session token. Unknown tokens are a no-op.
func (s *userService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.repo.DeleteSessionByToken(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// PurgeExpiredSessions removes sessions past their expiry and reports
// how many were deleted. Run at startup; live sessions are untouched.
func (s *userService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpiredSessions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired sessions: %w", err)
	}
	return n, nil
}

func toUser(row repository.User) *User {
	u := &User{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		CreatedAt: row.CreatedAt,
	}
	if row.ImageUrl.Valid {
		u.ImageUrl = row.ImageUrl.String
	}
	return u
}
