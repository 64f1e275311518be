package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// AdminHandler serves the role-gated administrative endpoints.
type AdminHandler struct {
	Users UserStore
}

func NewAdminHandler(users UserStore) *AdminHandler {
	return &AdminHandler{Users: users}
}

// Stats returns directory totals. The route sits behind the admin role
// middleware, so by the time this runs the caller is known to be an
// admin.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	total, online, err := h.Users.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count users failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total_users":  total,
		"online_users": online,
	})
}
