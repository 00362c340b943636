package service

import (
	"context"
	"testing"
	"time"

	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/domain"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/repository"
)

func newUserService(t *testing.T) (UserService, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	svc, err := NewUserService(store, 72*time.Hour)
	if err != nil {
		t.Fatalf("new user service: %v", err)
	}
	return svc, store
}

func TestSignup(t *testing.T) {
	svc, store := newUserService(t)

	user, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Asha",
		Email:    "Asha@Example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	if user.Email != "asha@example.com" {
		t.Errorf("Email = %q, want lowercased", user.Email)
	}

	stored := store.users[user.ID]
	if stored.PasswordHash == "correct-horse" || stored.PasswordHash == "" {
		t.Error("password was not hashed")
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	input := SignupInput{Name: "Asha", Email: "asha@example.com", Password: "correct-horse"}
	if _, err := svc.Signup(ctx, input); err != nil {
		t.Fatalf("first Signup() error = %v", err)
	}

	_, err := svc.Signup(ctx, input)
	if !domain.IsCode(err, domain.ECONFLICT) {
		t.Fatalf("error code = %q, want %q", domain.ErrorCode(err), domain.ECONFLICT)
	}
}

func TestSignup_Validation(t *testing.T) {
	svc, _ := newUserService(t)

	tests := []struct {
		name  string
		input SignupInput
		field string
	}{
		{"missing name", SignupInput{Email: "a@b.com", Password: "longenough"}, "name"},
		{"bad email", SignupInput{Name: "A", Email: "not-an-email", Password: "longenough"}, "email"},
		{"short password", SignupInput{Name: "A", Email: "a@b.com", Password: "short"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tt.input)
			if !domain.IsValidationError(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if fields := domain.GetValidationFields(err); fields[tt.field] == "" {
				t.Errorf("expected %q field error, got %v", tt.field, fields)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupInput{Name: "Asha", Email: "asha@example.com", Password: "correct-horse"}); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	user, token, err := svc.Login(ctx, "asha@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}

	got, err := svc.GetByToken(ctx, token)
	if err != nil {
		t.Fatalf("GetByToken() error = %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("GetByToken user = %d, want %d", got.ID, user.ID)
	}
}

func TestLogin_WrongCredentials(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupInput{Name: "Asha", Email: "asha@example.com", Password: "correct-horse"}); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	if _, _, err := svc.Login(ctx, "asha@example.com", "wrong-password"); !domain.IsCode(err, domain.EUNAUTHORIZED) {
		t.Errorf("wrong password: error code = %q, want %q", domain.ErrorCode(err), domain.EUNAUTHORIZED)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "correct-horse"); !domain.IsCode(err, domain.EUNAUTHORIZED) {
		t.Errorf("unknown email: error code = %q, want %q", domain.ErrorCode(err), domain.EUNAUTHORIZED)
	}
}

func TestGetByToken_Invalid(t *testing.T) {
	svc, _ := newUserService(t)

	if _, err := svc.GetByToken(context.Background(), "bogus"); !domain.IsCode(err, domain.EUNAUTHORIZED) {
		t.Errorf("error code = %q, want %q", domain.ErrorCode(err), domain.EUNAUTHORIZED)
	}
	if _, err := svc.GetByToken(context.Background(), ""); !domain.IsCode(err, domain.EUNAUTHORIZED) {
		t.Errorf("empty token: error code = %q, want %q", domain.ErrorCode(err), domain.EUNAUTHORIZED)
	}
}

func TestGetByToken_Expired(t *testing.T) {
	svc, store := newUserService(t)
	ctx := context.Background()

	user, _ := store.CreateUser(ctx, repository.CreateUserParams{
		Name: "Asha", Email: "asha@example.com", PasswordHash: "x",
	})
	store.CreateSession(ctx, repository.CreateSessionParams{
		UserID:    user.ID,
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Hour),
	})

	if _, err := svc.GetByToken(ctx, "stale"); !domain.IsCode(err, domain.EUNAUTHORIZED) {
		t.Errorf("error code = %q, want %q", domain.ErrorCode(err), domain.EUNAUTHORIZED)
	}
}

func TestPurgeExpiredSessions(t *testing.T) {
	svc, store := newUserService(t)
	ctx := context.Background()

	user, _ := store.CreateUser(ctx, repository.CreateUserParams{
		Name: "Asha", Email: "asha@example.com", PasswordHash: "x",
	})
	store.CreateSession(ctx, repository.CreateSessionParams{
		UserID:    user.ID,
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Hour),
	})
	store.CreateSession(ctx, repository.CreateSessionParams{
		UserID:    user.ID,
		Token:     "live",
		ExpiresAt: time.Now().Add(time.Hour),
	})

	purged, err := svc.PurgeExpiredSessions(ctx)
	if err != nil {
		t.Fatalf("PurgeExpiredSessions() error = %v", err)
	}
	if purged != 1 {
		t.Errorf("purged = %d, want 1", purged)
	}

	if _, err := svc.GetByToken(ctx, "live"); err != nil {
		t.Errorf("live session should survive the purge, got %v", err)
	}
	if len(store.sessions) != 1 {
		t.Errorf("sessions remaining = %d, want 1", len(store.sessions))
	}
}

func TestLogout(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupInput{Name: "Asha", Email: "asha@example.com", Password: "correct-horse"}); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	_, token, err := svc.Login(ctx, "asha@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := svc.GetByToken(ctx, token); !domain.IsCode(err, domain.EUNAUTHORIZED) {
		t.Errorf("error code after logout = %q, want %q", domain.ErrorCode(err), domain.EUNAUTHORIZED)
	}
}
