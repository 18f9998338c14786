package main

import (
	"context"

	"teecole/internal/config"
	"teecole/internal/database"
	"teecole/internal/pkg/logger"
	"teecole/internal/repository"
)

// Gives every gallery item that has a cover but no child rows a single
// child image equal to its cover. Safe to rerun.
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

	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("AutoMigrate failed")
	}

	n, err := repository.NewGalleryRepository(db).BackfillImages(context.Background())
	if err != nil {
		log.WithError(err).Fatal("gallery backfill failed")
	}
	log.WithField("items", n).Info("gallery backfill completed")
}
