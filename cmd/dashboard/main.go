package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"ftth-net.id/dashboard/internal/config"
	"ftth-net.id/dashboard/internal/handlers"
	"ftth-net.id/dashboard/internal/middleware"
	"ftth-net.id/dashboard/internal/session"
	"ftth-net.id/dashboard/internal/topology"
	"ftth-net.id/dashboard/internal/traffic"
	"ftth-net.id/dashboard/pkg/backend"
	"ftth-net.id/dashboard/pkg/logger"
	"ftth-net.id/dashboard/pkg/redis"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.NewWithOptions(logger.Options{
		Level:    logger.ParseLevel(cfg.LogLevel),
		Filename: cfg.LogFile,
	})
	defer log.Sync()
	log.Info("Starting FTTH dashboard v1.0.0...", "backend", cfg.BackendURL)
	if cfg.UsesDefaultSessionSecret() {
		log.Warn("SESSION_SECRET not set, session cookies are signed with the built-in default")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api := backend.New(cfg.BackendURL, cfg.BackendTimeout)
	sessions := session.NewStore(cfg.SessionSecret, cfg.SessionSecure)

	// Redis is optional: without it drafts stay in memory and logins are not throttled.
	var (
		rdb    *redis.RedisClient
		drafts topology.DraftStore = topology.NewMemoryStore(topology.DraftTTL)
	)
	if cfg.Redis.IsConfigured {
		client, err := redis.Connect(ctx, redis.Options{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
		})
		if err != nil {
			log.Warn("Redis unavailable, using in-memory drafts", "error", err.Error())
		} else {
			defer client.Close()
			rdb = client
			drafts = topology.NewRedisStore(client, topology.DraftTTL)
			log.Info("Redis connected successfully")
		}
	}

	// Traffic poller
	service := backend.NewServiceAccount(api, cfg.ServiceEmail, cfg.ServicePassword)
	poller := traffic.NewPoller(traffic.FromServiceAccount(service), cfg.TrafficRefresh, log)
	if service.Configured() {
		if err := poller.Start(ctx); err != nil {
			log.Fatal("Failed to start traffic poller", "error", err.Error())
		}
		defer poller.Stop()
	} else {
		log.Warn("SERVICE_EMAIL/SERVICE_PASSWORD not set, traffic refreshes only on demand")
	}

	h := handlers.New(api, sessions, poller, drafts, log)
	gate := middleware.NewSessionGate(sessions, log)
	limiter := middleware.NewRateLimiter(rdb, cfg.RateLimit, time.Minute).TrustProxy(cfg.TrustProxy)

	r := newRouter(h, gate, limiter)

	// CORS configuration
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Handler:      c.Handler(r),
		Addr:         ":" + cfg.Port,
		WriteTimeout: 15*time.Second + cfg.BackendTimeout,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", "error", err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err.Error())
	}
}
