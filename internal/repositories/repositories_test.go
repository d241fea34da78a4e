package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/noelps-git/tastemates/internal/database"
	"github.com/noelps-git/tastemates/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setup in-memory DB
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return user
}

func seedRestaurant(t *testing.T, db *gorm.DB, name string) *models.Restaurant {
	t.Helper()
	r := &models.Restaurant{Name: name, City: "Bangalore", Cuisine: "South Indian"}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("failed to seed restaurant %s: %v", name, err)
	}
	return r
}
