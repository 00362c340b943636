package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/domain"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/service"
)

const (
	// UserContextKey is the echo context key for the authenticated user
	UserContextKey = "user"

	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
)

// RequireAuth gates a route group behind a bearer session token.
// A request with no token at all is forbidden; a request that presents a
// token that does not resolve to a live session is unauthorized.
func RequireAuth(userService service.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(authorizationHeader)
			if header == "" {
				return domain.Forbidden("auth.require", "Authorization header is required")
			}

			token := strings.TrimPrefix(header, bearerPrefix)
			if token == header || token == "" {
				return domain.Forbidden("auth.require", "Authorization header must be a bearer token")
			}

			user, err := userService.GetByToken(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(UserContextKey, user)
			c.Set(TokenContextKey, token)
			return next(c)
		}
	}
}

// TokenContextKey is the echo context key for the presented session token
const TokenContextKey = "session_token"

// GetUser retrieves the authenticated user from the echo context.
// Returns nil on routes that did not pass through RequireAuth.
func GetUser(c echo.Context) *service.User {
	user, ok := c.Get(UserContextKey).(*service.User)
	if !ok {
		return nil
	}
	return user
}

// GetToken retrieves the presented session token, or "".
func GetToken(c echo.Context) string {
	token, _ := c.Get(TokenContextKey).(string)
	return token
}
