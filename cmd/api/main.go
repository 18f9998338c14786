package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"teecole/internal/config"
	"teecole/internal/database"
	"teecole/internal/pkg/logger"
	"teecole/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", false).WithError(err).Fatal("config load failed")
	}

	log := logger.New(cfg.LogLevel, cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("database connect failed")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("database migrate failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.SeedServices(ctx, db, log); err != nil {
		log.WithError(err).Fatal("seed services failed")
	}
	if err := database.SeedAdmin(ctx, db, database.AdminSeed(cfg.Admin), log); err != nil {
		log.WithError(err).Fatal("seed admin failed")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.New(router.Deps{Config: cfg, DB: db, Log: log, Ctx: ctx}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	if err := database.Close(db); err != nil {
		log.WithError(err).Error("database close failed")
	}
	log.Info("server stopped")
}
