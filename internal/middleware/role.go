package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medix-app/medix-backend/internal/auth"
	"github.com/medix-app/medix-backend/internal/model"
)

// RequireRole gates a route on the role embedded in the verified
// claims. Absent claims deny the same way a wrong role does, so the
// middleware is safe even if it is ever registered without JWTAuth in
// front of it.
func RequireRole(required model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !auth.Authorize(ClaimsFrom(c), required) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
