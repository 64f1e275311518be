// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/medix-app/medix-backend/internal/auth"
	"github.com/medix-app/medix-backend/internal/config"
	"github.com/medix-app/medix-backend/internal/handler"
	"github.com/medix-app/medix-backend/internal/middleware"
	"github.com/medix-app/medix-backend/internal/model"
)

// Deps bundles everything the routes need.
type Deps struct {
	Auth   *handler.AuthHandler
	Users  *handler.UserHandler
	Admin  *handler.AdminHandler
	Tokens *auth.TokenService
	Cache  config.CacheConfig
	Redis  *redis.Client
}

// Register mounts all routes. Unauthenticated operations live under
// /v1/auth, protected endpoints under /v1, and admin endpoints under
// /v1/admin behind the role gate.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	g := e.Group("/v1/auth")
	g.POST("/register", d.Auth.Register)
	g.POST("/login", d.Auth.Login)

	v1 := e.Group("/v1")
	v1.Use(middleware.JWTAuth(d.Tokens))
	v1.GET("/users", d.Users.List, middleware.ResponseCache(d.Cache, d.Redis))
	v1.GET("/users/:id", d.Users.Profile)
	v1.PUT("/users/status", d.Users.UpdateStatus)
	v1.GET("/me", d.Users.Me)

	admin := v1.Group("/admin")
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.GET("/stats", d.Admin.Stats)
}
