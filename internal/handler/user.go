package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medix-app/medix-backend/internal/middleware"
	"github.com/medix-app/medix-backend/internal/model"
	"github.com/medix-app/medix-backend/internal/queue"
	"github.com/medix-app/medix-backend/internal/repository"
	"github.com/medix-app/medix-backend/internal/service"
)

// UserHandler serves the directory endpoints: listing, profiles, the
// presence flag and the identity echo.
type UserHandler struct {
	Users  UserStore
	Events *service.Publisher
}

func NewUserHandler(users UserStore, events *service.Publisher) *UserHandler {
	return &UserHandler{Users: users, Events: events}
}

type statusReq struct {
	IsOnline *bool `json:"is_online"`
}

// List returns every account in sanitized form.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list users failed"})
	}

	out := make([]model.Public, 0, len(users))
	for _, u := range users {
		out = append(out, u.Sanitized())
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// Profile returns one account by id.
func (h *UserHandler) Profile(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u.Sanitized()})
}

// UpdateStatus sets the caller's own presence flag.
func (h *UserHandler) UpdateStatus(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	var req statusReq
	if err := c.Bind(&req); err != nil || req.IsOnline == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "is_online required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.SetOnline(ctx, claims.AccountID, *req.IsOnline); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}

	_ = h.Events.Publish(ctx, service.QueueStatusChanged, queue.StatusChangedEvent{
		UserID:    claims.AccountID,
		IsOnline:  *req.IsOnline,
		ChangedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"is_online": *req.IsOnline})
}

// Me echoes the identity embedded in the verified token.
func (h *UserHandler) Me(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": claims.AccountID,
		"role":    claims.Role,
	})
}
