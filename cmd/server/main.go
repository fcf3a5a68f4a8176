package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contesthub/internal/api"
	"contesthub/internal/api/middleware"
	"contesthub/internal/app/service"
	"contesthub/internal/common/security"
	"contesthub/internal/domain/repository"
	"contesthub/internal/platform/config"
	"contesthub/internal/platform/database"
	"contesthub/internal/platform/denylist"
)

func main() {
	// 1. Load Configuration (fails fast on a missing signing secret)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	log.Println("Configuration loaded.")

	// 2. Initialize security primitives
	codec, err := security.NewTokenCodec(cfg.JWTSecret, security.TokenLifetime)
	if err != nil {
		log.Fatalf("Token codec error: %v", err)
	}
	hasher := security.NewHasher(cfg.HashCost)

	// 3. Initialize Database
	db, err := database.Connect(cfg.DBConnStr)
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}
	defer db.Close()
	log.Println("Database connected.")

	// 4. Initialize the session deny-list (optional; without Redis, logout
	// is a client-side cookie clear only)
	var sessionDenylist *denylist.Store
	if cfg.DenylistEnabled() {
		rdb, err := denylist.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Redis error: %v", err)
		}
		defer rdb.Close()
		sessionDenylist = denylist.NewStore(rdb)
		log.Println("Session deny-list enabled.")
	}

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(db)
	eventRepo := repository.NewPgEventRepository(db)
	articleRepo := repository.NewPgArticleRepository(db)

	// 6. Initialize Services
	var revoker service.TokenRevoker
	if sessionDenylist != nil {
		revoker = sessionDenylist
	}
	authService := service.NewAuthService(userRepo, hasher, codec, revoker)
	adminService := service.NewAdminService(userRepo, hasher)
	eventService := service.NewEventService(eventRepo)
	articleService := service.NewArticleService(articleRepo)

	// 7. Initialize Router & HTTP Server
	var guardDenylist middleware.Denylist
	if sessionDenylist != nil {
		guardDenylist = sessionDenylist
	}
	router := api.NewRouter(cfg, codec, guardDenylist, authService, adminService, eventService, articleService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
