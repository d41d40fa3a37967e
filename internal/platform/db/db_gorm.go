// Package db opens the gorm database connection used by all repositories.
package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "fleamarket_backend/internal/feature/auth/domain/entity"
	itementity "fleamarket_backend/internal/feature/items/domain/entity"
)

// OpenDB connects to Postgres with a retry loop and optionally runs migrations.
// TranslateError is enabled so unique violations surface as gorm.ErrDuplicatedKey
// regardless of driver.
func OpenDB(dsn string, runMigrations bool) (*gorm.DB, error) {
	var (
		conn *gorm.DB
		err  error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		conn, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after 60s: %w", err)
		}
		slog.Warn("DB connect failed, retrying...", "error", err)
		time.Sleep(3 * time.Second)
	}

	if runMigrations {
		// マイグレーション（User, Item）
		if err := conn.AutoMigrate(
			&authentity.User{},
			&itementity.Item{},
		); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}

	return conn, nil
}
