package database

import (
	"fmt"
	"time"

	"github.com/noelps-git/tastemates/internal/config"
	"github.com/noelps-git/tastemates/internal/models"
	"github.com/noelps-git/tastemates/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.GetDSN()

	var logLevel gormlogger.LogLevel
	if cfg.AppEnv == "development" {
		logLevel = gormlogger.Info
	} else {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		// Millisecond truncation keeps stored created_at values identical to
		// their polling-cursor round-trip, so a cursor never re-matches the
		// message it was taken from.
		NowFunc: func() time.Time {
			return time.Now().UTC().Truncate(time.Millisecond)
		},
		// Unique-constraint violations must surface as gorm.ErrDuplicatedKey
		// so repositories can report conflicts instead of generic failures.
		TranslateError:         true,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetMaxOpenConns(200)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	logger.Info("Database connected successfully")
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Friendship{},
		&models.Group{},
		&models.GroupMember{},
		&models.Message{},
		&models.Vote{},
		&models.VoteOption{},
		&models.VoteResponse{},
		&models.Notification{},
		&models.BucketListItem{},
	)

	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}
