package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"teecole/internal/config"
	"teecole/internal/database"
	"teecole/internal/pkg/logger"
	"teecole/internal/repository"
)

const (
	modeRecreate = "recreate"
	modeUpsert   = "upsert"
)

// Resets the admin account from ADMIN_USERNAME / ADMIN_PASSWORD / ADMIN_EMAIL.
//
//	recreate  delete every admin row, then insert the configured one
//	upsert    insert or update the configured username only
func main() {
	mode := flag.String("mode", modeUpsert, "recreate | upsert")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.New("info", false).WithError(err).Fatal("config load failed")
	}
	log := logger.New(cfg.LogLevel, cfg.IsProduction())

	if err := run(context.Background(), cfg, *mode, log); err != nil {
		log.WithError(err).Error("admin reset failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.AppConfig, mode string, log logrus.FieldLogger) error {
	if mode != modeRecreate && mode != modeUpsert {
		return fmt.Errorf("unknown mode %q, want %s or %s", mode, modeRecreate, modeUpsert)
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	admin, err := database.NewAdminUser(database.AdminSeed(cfg.Admin))
	if err != nil {
		return err
	}

	repo := repository.NewAdminUserRepository(db)
	if mode == modeRecreate {
		err = repo.Recreate(ctx, admin)
	} else {
		err = repo.Upsert(ctx, admin)
	}
	if err != nil {
		return fmt.Errorf("%s admin: %w", mode, err)
	}

	total, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	log.WithFields(logrus.Fields{
		"mode":     mode,
		"username": admin.Username,
		"admins":   total,
	}).Info("admin reset completed")
	return nil
}
