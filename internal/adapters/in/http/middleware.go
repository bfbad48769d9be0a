package http

import (
	"errors"
	"net/http"
	"strings"

	"ordering/internal/core/domain/model/account"

	"github.com/labstack/echo/v4"
)

// identityContextKey is the echo context key the authenticated identity is
// stored under.
const identityContextKey = "auth.identity"

// Authenticate returns echo middleware that verifies the bearer token and
// stores the caller's identity in the request context.
func Authenticate(auth *TokenAuthenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return ctx.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Missing bearer token",
				})
			}

			identity, err := auth.Parse(token)
			if err != nil {
				message := "Invalid auth token"
				if errors.Is(err, ErrTokenExpired) {
					message = "Auth token expired"
				}
				return ctx.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: message,
				})
			}

			ctx.Set(identityContextKey, identity)
			return next(ctx)
		}
	}
}

// RequireRoles returns echo middleware that rejects callers holding none of
// the given roles. Must run after Authenticate.
func RequireRoles(roles ...account.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			identity, ok := identityFrom(ctx)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Not authenticated",
				})
			}

			for _, role := range roles {
				if identity.HasRole(role) {
					return next(ctx)
				}
			}

			return ctx.JSON(http.StatusForbidden, errorResponse{
				Code:    http.StatusForbidden,
				Message: "Insufficient role",
			})
		}
	}
}

// identityFrom extracts the authenticated identity from the echo context.
func identityFrom(ctx echo.Context) (Identity, bool) {
	identity, ok := ctx.Get(identityContextKey).(Identity)
	return identity, ok
}
