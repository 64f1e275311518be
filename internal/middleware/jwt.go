// Package middleware provides the request-level authentication and
// authorization chain plus the Redis response cache.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medix-app/medix-backend/internal/auth"
)

// claimsKey is the echo.Context key under which verified claims are
// stored for downstream middleware and handlers.
const claimsKey = "auth_claims"

// JWTAuth verifies the Bearer token on each request and attaches the
// claims to the context. A missing token is 401; an invalid or expired
// one is 403. Handlers behind this middleware can rely on ClaimsFrom
// returning non-nil claims.
func JWTAuth(tokens *auth.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims, err := tokens.Verify(raw)
			if err != nil {
				if errors.Is(err, auth.ErrTokenMissing) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing token"})
				}
				if errors.Is(err, auth.ErrTokenExpired) {
					return c.JSON(http.StatusForbidden, echo.Map{"error": "token expired"})
				}
				return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid token"})
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims attached by JWTAuth, or nil when the
// request never passed token verification.
func ClaimsFrom(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsKey).(*auth.Claims)
	return claims
}
