package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/avelinov/shop_api/internal/config"
	"github.com/avelinov/shop_api/internal/events"
	"github.com/avelinov/shop_api/internal/httpserver"
	"github.com/avelinov/shop_api/internal/logging"
	"github.com/avelinov/shop_api/internal/models"
	"github.com/avelinov/shop_api/internal/repo"
	"github.com/avelinov/shop_api/internal/service"
	"github.com/avelinov/shop_api/pkg/db"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.RefreshSecret, "REFRESH_SECRET")

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := database.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.RefreshToken{},
	); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers, events.UserEventsTopic)
	}

	gormRepo := repo.New(database)

	deps := httpserver.Deps{
		CatalogHandler: &httpserver.CatalogHTTP{Svc: &service.CatalogService{Repo: gormRepo}},
		OrderHandler:   &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: gormRepo}},
		AuthHandler: &httpserver.AuthHTTP{Svc: &service.AuthService{
			Repo:          gormRepo,
			JWTSecret:     cfg.JWTSecret,
			RefreshSecret: cfg.RefreshSecret,
			Producer:      producer,
		}},
		JWTSecret: cfg.JWTSecret,
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(httpserver.RequestLogger(logger))

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
