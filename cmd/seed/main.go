package main

import (
	"context"

	"teecole/internal/config"
	"teecole/internal/database"
	"teecole/internal/pkg/logger"
)

// Seeds the services catalogue and the default admin. Safe to rerun.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", false).WithError(err).Fatal("config load failed")
	}
	log := logger.New(cfg.LogLevel, cfg.IsProduction())

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("DB connection failed")
	}
	defer database.Close(db)

	log.Info("running AutoMigrate")
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("AutoMigrate failed")
	}

	ctx := context.Background()
	if err := database.SeedServices(ctx, db, log); err != nil {
		log.WithError(err).Fatal("seed services failed")
	}
	if err := database.SeedAdmin(ctx, db, database.AdminSeed(cfg.Admin), log); err != nil {
		log.WithError(err).Fatal("seed admin failed")
	}
	log.Info("seed completed")
}
