package config

import (
	"context"
	"fmt"
	"time"

	"Recipe-Box/internal/utils"

	"github.com/cenkalti/backoff/v4"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectMaxElapsed = 30 * time.Second

func DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		utils.GetConfig("DB_HOST"),
		utils.GetConfig("DB_USER"),
		utils.GetConfig("DB_PASSWORD"),
		utils.GetConfig("DB_NAME"),
		utils.GetConfig("DB_PORT"),
		utils.GetConfig("DB_TIMEZONE"),
	)
}

// ConnectDB opens the database and waits for it to answer a ping,
// retrying with exponential backoff while it comes up.
func ConnectDB(ctx context.Context) (*gorm.DB, error) {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = connectMaxElapsed

	var db *gorm.DB
	err := backoff.RetryNotify(func() error {
		conn, err := gorm.Open(postgres.Open(DSN()), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			return err
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return backoff.Permanent(err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return err
		}
		db = conn
		return nil
	}, backoff.WithContext(bo, ctx), func(err error, wait time.Duration) {
		log.Warnf("database not ready, retrying in %s: %v", wait, err)
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}
