package main

import (
	"encoding/csv"
	"flag"
	"io"
	"os"

	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/repositories"
	"github.com/tastebook/backend/pkg/config"
	"github.com/tastebook/backend/pkg/logger"
)

// Bulk ingredient import: reads a two-column CSV (name, measurement unit),
// skips the header line and upserts catalog rows. Existing (name, unit)
// pairs are left untouched.
func main() {
	path := flag.String("file", "ingredients.csv", "path to the ingredients CSV file")
	flag.Parse()

	cfg := config.Load()
	if err := logger.Init(cfg.Env); err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := config.InitDB()
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	if err := db.Postgres.AutoMigrate(&models.Ingredient{}); err != nil {
		logger.Fatalf("Failed to migrate ingredient model: %v", err)
	}

	file, err := os.Open(*path)
	if err != nil {
		logger.Fatalf("Failed to open %s: %v", *path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 2

	// Skip the header line
	if _, err := reader.Read(); err != nil {
		logger.Fatalf("Failed to read CSV header: %v", err)
	}

	var ingredients []models.Ingredient
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Fatalf("Failed to read CSV row: %v", err)
		}
		ingredients = append(ingredients, models.Ingredient{
			Name:            row[0],
			MeasurementUnit: row[1],
		})
	}

	repo := repositories.NewPostgresIngredientRepository(db.Postgres)
	if err := repo.UpsertIngredients(ingredients); err != nil {
		logger.Fatalf("Failed to upsert ingredients: %v", err)
	}
	logger.Infof("Imported %d ingredient rows from %s", len(ingredients), *path)
}
