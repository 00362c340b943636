package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/domain"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/service"
)

// stubUserService resolves exactly one token to one user.
type stubUserService struct {
	token string
	user  *service.User
}

func (s *stubUserService) Signup(context.Context, service.SignupInput) (*service.User, error) {
	panic("not used")
}

func (s *stubUserService) Login(context.Context, string, string) (*service.User, string, error) {
	panic("not used")
}

func (s *stubUserService) GetByToken(_ context.Context, token string) (*service.User, error) {
	if token == s.token {
		return s.user, nil
	}
	return nil, domain.Unauthorized("user.get_by_token", "Invalid or expired session")
}

func (s *stubUserService) Logout(context.Context, string) error { return nil }

func (s *stubUserService) PurgeExpiredSessions(context.Context) (int64, error) {
	panic("not used")
}

func runAuth(t *testing.T, header string) (error, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	users := &stubUserService{
		token: "good-token",
		user:  &service.User{ID: 42, Name: "Asha", Email: "asha@example.com"},
	}

	handler := RequireAuth(users)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c), c
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	err, _ := runAuth(t, "")
	require.Error(t, err)
	assert.Equal(t, domain.EFORBIDDEN, domain.ErrorCode(err))
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	for _, header := range []string{"Token abc", "Bearer", "Bearer "} {
		err, _ := runAuth(t, header)
		require.Error(t, err, "header %q", header)
		assert.Equal(t, domain.EFORBIDDEN, domain.ErrorCode(err), "header %q", header)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	err, _ := runAuth(t, "Bearer bad-token")
	require.Error(t, err)
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
}

func TestRequireAuth_ValidToken(t *testing.T) {
	err, c := runAuth(t, "Bearer good-token")
	require.NoError(t, err)

	user := GetUser(c)
	require.NotNil(t, user)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "good-token", GetToken(c))
}

func TestGetUser_Unauthenticated(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Nil(t, GetUser(c))
	assert.Empty(t, GetToken(c))
}
