package migration

import (
	"context"
	"embed"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrations embed.FS

func setup() error {
	goose.SetBaseFS(migrations)
	return goose.SetDialect("postgres")
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := setup(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	log.Info("Database migration complete")
	return nil
}

// Rollback reverts the most recent migration.
func Rollback(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := setup(); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	log.Info("Database rollback complete")
	return nil
}

func Status(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := setup(); err != nil {
		return err
	}
	return goose.StatusContext(ctx, sqlDB, "migrations")
}
