package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/yeremiapane/restaurant-frontdesk/config"
	"github.com/yeremiapane/restaurant-frontdesk/database"
	"github.com/yeremiapane/restaurant-frontdesk/events"
	"github.com/yeremiapane/restaurant-frontdesk/floor"
	"github.com/yeremiapane/restaurant-frontdesk/router"
	"github.com/yeremiapane/restaurant-frontdesk/services"
	"github.com/yeremiapane/restaurant-frontdesk/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}

	utils.ConfigureLogger(cfg.Log.Level, cfg.Log.Format)
	utils.ConfigureJWT(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	utils.RegisterValidators()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.SeedAdmin(db, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed admin account: %v", err)
	}

	sync, err := services.SynchronizerFromConfig(cfg.Sync)
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid synchronizer policy: %v", err)
	}

	hub := floor.NewHub()
	notifiers := services.Notifiers{hub}

	if cfg.RabbitMQ.URL != "" {
		publisher, err := events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			utils.ErrorLogger.Printf("RabbitMQ unavailable, events disabled: %v", err)
		} else {
			defer publisher.Close()
			notifiers = append(notifiers, publisher)
		}
	}

	if cfg.Server.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.SetupRouter(router.Options{
		DB:        db,
		Config:    cfg,
		Sync:      sync,
		Notifier:  notifiers,
		Hub:       hub,
		Blacklist: tokenBlacklist(cfg.Redis),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.InfoLogger.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Printf("Server forced to shutdown: %v", err)
	}
}

// tokenBlacklist uses Redis when configured and reachable, otherwise process memory.
func tokenBlacklist(cfg config.RedisConfig) utils.TokenBlacklist {
	if cfg.Addr == "" {
		return utils.NewMemoryBlacklist()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		utils.ErrorLogger.Printf("Redis unavailable at %s, revoked tokens kept in memory: %v", cfg.Addr, err)
		client.Close()
		return utils.NewMemoryBlacklist()
	}
	utils.InfoLogger.Printf("Token blacklist backed by Redis at %s", cfg.Addr)
	return utils.NewRedisBlacklist(client)
}
