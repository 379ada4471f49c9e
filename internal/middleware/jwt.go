package middleware

import (
	"context"
	"net/http"
	"strings"

	"superinv/internal/common"
	"superinv/internal/repositories"
	"superinv/internal/services"

	"github.com/labstack/echo/v4"
)

// JWTMiddleware validates the bearer token and loads the authenticated
// user id into the request context. No handler behind it runs without a
// verified identity.
func JWTMiddleware(authService services.AuthService, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token format")
			}

			userID, err := authService.VerifyToken(c.Request().Context(), tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			// The token may outlive the account; reject deleted users.
			if _, err := userRepo.GetByID(c.Request().Context(), userID); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
