package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jobdesk/dashboard-system/internal/api"
	"github.com/jobdesk/dashboard-system/internal/core/service"
	"github.com/jobdesk/dashboard-system/internal/gateway"
	"github.com/jobdesk/dashboard-system/internal/infrastructure/config"
	redisdb "github.com/jobdesk/dashboard-system/internal/infrastructure/db/redis"
	"github.com/jobdesk/dashboard-system/internal/infrastructure/session"
	"github.com/jobdesk/dashboard-system/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A missing or placeholder gateway URL blocks everything; fail fast.
	gw, err := gateway.NewClient(gateway.Config{
		BaseURL: cfg.Gateway.URL,
		Timeout: cfg.Gateway.Timeout,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("gateway client configuration invalid")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	sessions := session.NewRedisStore(rdb)
	tracker := session.NewTracker()
	store := service.NewSnapshotStore()

	syncService := service.NewSyncService(gw, store, tracker, cfg.Gateway.PollInterval, log)
	if err := syncService.Load(ctx); err != nil {
		// Fatal for the session, not the process: the API keeps answering
		// with the failure reason until a restart.
		log.Error().Err(err).Msg("initial load failed, dashboard blocked")
	}
	go syncService.Run(ctx)

	jobService := service.NewJobService(gw, store, log)
	authService := service.NewAuthService(gw, sessions, tracker, cfg.JWTSecret, 24*time.Hour, log)
	queueService := service.NewQueueService(syncService)
	handoffService := service.NewHandoffService(syncService, jobService, log)

	e := api.NewRouter(api.Deps{
		Auth:      authService,
		Jobs:      jobService,
		Queue:     queueService,
		Handoff:   handoffService,
		Sync:      syncService,
		Sessions:  sessions,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("dashboard server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info().Msg("server shutting down")

	cancel() // stops the polling loop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	log.Info().Msg("shutdown complete")
}
