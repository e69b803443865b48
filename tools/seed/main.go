package main

import (
	"context"
	"fmt"
	"os"

	"vastra-api/database"
	"vastra-api/models"
	"vastra-api/repository"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Seeds the catalog with the launch assortment. Safe to re-run: it skips
// seeding when any products already exist.
func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := database.ConnectPostgres(database.PostgresConfig{
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		DB:       os.Getenv("POSTGRES_DB"),
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
	}, logger, &models.Product{})
	if err != nil {
		logger.Fatal("DB connection failed", zap.Error(err))
	}

	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		logger.Fatal("count failed", zap.Error(err))
	}
	if count > 0 {
		logger.Info("catalog already seeded", zap.Int64("products", count))
		return
	}

	repo := repository.NewGormProductRepository(db)
	ctx := context.Background()

	for i, p := range launchCatalog() {
		product := p
		if err := repo.Create(ctx, &product); err != nil {
			logger.Fatal("seed failed", zap.Int("index", i), zap.String("name", product.Name), zap.Error(err))
		}
	}

	logger.Info("catalog seeded", zap.Int("products", len(launchCatalog())))
	fmt.Println("done")
}

func launchCatalog() []models.Product {
	return []models.Product{
		{
			Name:        "Kanjivaram Silk Saree",
			Description: "Handwoven South Indian silk saree with gold zari border",
			PricePaise:  1249900,
			Category:    models.CategorySaree,
			ImageURL:    "/images/garments/kanjivaram-silk.jpg",
		},
		{
			Name:        "Banarasi Georgette Saree",
			Description: "Lightweight Banarasi weave for festive evenings",
			PricePaise:  849900,
			Category:    models.CategorySaree,
			ImageURL:    "/images/garments/banarasi-georgette.jpg",
		},
		{
			Name:        "Bridal Velvet Lehenga",
			Description: "Embroidered velvet lehenga with mirror work dupatta",
			PricePaise:  2899900,
			Category:    models.CategoryLehenga,
			ImageURL:    "/images/garments/bridal-velvet-lehenga.jpg",
		},
		{
			Name:        "Floral Organza Lehenga",
			Description: "Pastel organza lehenga with floral threadwork",
			PricePaise:  1599900,
			Category:    models.CategoryLehenga,
			ImageURL:    "/images/garments/floral-organza-lehenga.jpg",
		},
		{
			Name:        "Chikankari Cotton Kurta",
			Description: "Lucknowi chikankari on breathable summer cotton",
			PricePaise:  249900,
			Category:    models.CategoryKurta,
			ImageURL:    "/images/garments/chikankari-kurta.jpg",
		},
		{
			Name:        "Indigo Block Print Kurta",
			Description: "Hand block printed indigo kurta, Jaipur dyed",
			PricePaise:  199900,
			Category:    models.CategoryKurta,
			ImageURL:    "/images/garments/indigo-block-kurta.jpg",
		},
		{
			Name:        "Punjabi Phulkari Salwar Kameez",
			Description: "Vibrant phulkari embroidery with contrast salwar",
			PricePaise:  549900,
			Category:    models.CategorySalwarKameez,
			ImageURL:    "/images/garments/phulkari-salwar.jpg",
		},
		{
			Name:        "Anarkali Salwar Kameez",
			Description: "Floor-length anarkali with churidar and dupatta",
			PricePaise:  699900,
			Category:    models.CategorySalwarKameez,
			ImageURL:    "/images/garments/anarkali-salwar.jpg",
		},
	}
}
