package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/medix-app/medix-backend/internal/auth"
	"github.com/medix-app/medix-backend/internal/config"
	"github.com/medix-app/medix-backend/internal/database"
	"github.com/medix-app/medix-backend/internal/handler"
	"github.com/medix-app/medix-backend/internal/repository"
	"github.com/medix-app/medix-backend/internal/router"
	"github.com/medix-app/medix-backend/internal/service"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(context.Background(), cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, response cache disabled")
	}

	users := repository.NewUserRepo(db)
	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret))
	events := service.NewPublisher(cfg.AMQPURL)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))

	router.Register(e, router.Deps{
		Auth:   handler.NewAuthHandler(users, hasher, tokens, events),
		Users:  handler.NewUserHandler(users, events),
		Admin:  handler.NewAdminHandler(users),
		Tokens: tokens,
		Cache:  config.LoadCache(),
		Redis:  rdb,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
