package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/Conceptual-Machines/counterpoint-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	sqlitePrefix    = "sqlite://"
	maxOpenConns    = 10
	connMaxLifetime = time.Hour
)

// Connect opens a postgres database, or sqlite for a "sqlite://" URL
func Connect(databaseURL string) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is empty")
	}

	cfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	isSQLite := strings.HasPrefix(databaseURL, sqlitePrefix)
	var dialector gorm.Dialector
	if isSQLite {
		dialector = sqlite.Open(strings.TrimPrefix(databaseURL, sqlitePrefix))
	} else {
		dialector = postgres.Open(databaseURL)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if isSQLite {
		// One connection keeps ":memory:" databases alive and serializes writers
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetConnMaxLifetime(connMaxLifetime)
	}

	return db, nil
}

// Migrate creates or updates the schema
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.CantusFirmus{},
		&models.ValidationLog{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
