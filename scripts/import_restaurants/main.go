package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/noelps-git/tastemates/internal/models"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Bulk-imports restaurant rows from a spreadsheet for dev/staging seeding.
// Usage: go run scripts/import_restaurants/main.go <file.xlsx>
// Expected columns: Name | City | Cuisine
func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if len(os.Args) < 2 {
		log.Fatal("usage: import_restaurants <file.xlsx>")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	f, err := excelize.OpenFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	totalImported := 0

	for _, sheetName := range f.GetSheetList() {
		fmt.Printf("Importing sheet: %s\n", sheetName)
		rows, err := f.GetRows(sheetName)
		if err != nil {
			fmt.Printf("Error reading sheet %s: %v\n", sheetName, err)
			continue
		}

		for i, row := range rows {
			if i == 0 || len(row) < 1 { // Skip header or invalid rows
				continue
			}

			name := strings.TrimSpace(row[0])
			if name == "" {
				continue
			}

			restaurant := models.Restaurant{Name: name}
			if len(row) > 1 {
				restaurant.City = strings.TrimSpace(row[1])
			}
			if len(row) > 2 {
				restaurant.Cuisine = strings.TrimSpace(row[2])
			}

			if err := db.Where("name = ? AND city = ?", restaurant.Name, restaurant.City).
				FirstOrCreate(&restaurant).Error; err != nil {
				fmt.Printf("Error importing row %d: %v\n", i, err)
				continue
			}
			totalImported++
		}
	}

	fmt.Printf("Done. Imported %d restaurants.\n", totalImported)
}
