package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medix-app/medix-backend/internal/auth"
	"github.com/medix-app/medix-backend/internal/model"
	"github.com/medix-app/medix-backend/internal/queue"
	"github.com/medix-app/medix-backend/internal/repository"
	"github.com/medix-app/medix-backend/internal/service"
)

// AuthHandler implements registration and login.
type AuthHandler struct {
	Users  UserStore
	Hasher auth.Hasher
	Tokens *auth.TokenService
	Events *service.Publisher
}

func NewAuthHandler(users UserStore, hasher auth.Hasher, tokens *auth.TokenService, events *service.Publisher) *AuthHandler {
	return &AuthHandler{Users: users, Hasher: hasher, Tokens: tokens, Events: events}
}

// ----- DTOs -----

type registerReq struct {
	Username   string `json:"username"`
	Login      string `json:"login"`
	Password   string `json:"password"`
	Speciality string `json:"speciality"`
}

type loginReq struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResp struct {
	Token   string       `json:"token"`
	Expires time.Time    `json:"expires"`
	User    model.Public `json:"user"`
}

// Register creates an account with the hashed password and the default
// role. Duplicate logins come back as 400, not 409, so registration
// and login report credential problems uniformly.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Login = strings.ToLower(strings.TrimSpace(req.Login))
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Login == "" || req.Password == "" || req.Speciality == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username, login, password and speciality are required"})
	}

	hash, err := h.Hasher.Hash(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u := &model.User{
		Username:     req.Username,
		Login:        req.Login,
		PasswordHash: hash,
		Speciality:   req.Speciality,
		Role:         model.RoleUser,
	}
	id, err := h.Users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateLogin) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "login already taken"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	u.ID = id

	_ = h.Events.Publish(ctx, service.QueueAccountRegistered, queue.AccountRegisteredEvent{
		UserID:     id,
		Username:   u.Username,
		Login:      u.Login,
		Speciality: u.Speciality,
		Role:       string(u.Role),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{"user": u.Sanitized()})
}

// Login verifies the credentials and issues a one-hour token. An
// unknown login and a wrong password are indistinguishable to the
// caller.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Login = strings.ToLower(strings.TrimSpace(req.Login))
	if req.Login == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "login and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByLogin(ctx, req.Login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Unknown login and wrong password share one response so
			// callers cannot probe which logins exist.
			return c.JSON(http.StatusBadRequest, echo.Map{"error": auth.ErrInvalidCredentials.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !h.Hasher.Verify(req.Password, u.PasswordHash) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": auth.ErrInvalidCredentials.Error()})
	}

	token, err := h.Tokens.Issue(u.ID, u.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, loginResp{
		Token:   token,
		Expires: time.Now().UTC().Add(auth.TokenTTL),
		User:    u.Sanitized(),
	})
}
