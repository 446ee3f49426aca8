package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"catalog-scraper/internal/types"
	"catalog-scraper/utils"
)

// Uploads a harvested category directory to the downstream catalog API: each
// entry of products.json becomes one multipart create-parts request carrying
// its sibling image file.
func main() {
	// Load .env file if present
	_ = godotenv.Load()

	var (
		dirFlag      = flag.String("dir", "", "Category output directory containing products.json (required)")
		categoryFlag = flag.String("category", "", "Target category ID (default: directory basename)")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if *dirFlag == "" {
		logger.Fatal("The -dir flag is required")
	}

	apiURL := os.Getenv("CATALOG_API_URL")
	apiToken := os.Getenv("CATALOG_API_TOKEN")
	if apiURL == "" || apiToken == "" {
		logger.Fatal("CATALOG_API_URL and CATALOG_API_TOKEN must be set")
	}

	categoryID := *categoryFlag
	if categoryID == "" {
		categoryID = filepath.Base(filepath.Clean(*dirFlag))
	}

	data, err := os.ReadFile(filepath.Join(*dirFlag, "products.json"))
	if err != nil {
		logger.Fatalf("Failed to read products.json: %v", err)
	}
	var products []types.Product
	if err := json.Unmarshal(data, &products); err != nil {
		logger.Fatalf("Failed to parse products.json: %v", err)
	}

	client := utils.NewAPIClient(apiURL, apiToken, logger)
	ctx := context.Background()

	if client.Ping(ctx) {
		logger.Info("Catalog API connection test passed")
	} else {
		logger.Warn("Catalog API connection test failed, proceeding anyway")
	}

	uploaded, skipped, failed := 0, 0, 0
	for _, product := range products {
		if product.Image == "" {
			logger.Debugf("Skipping %s: no image on disk", product.ID)
			skipped++
			continue
		}
		imagePath := filepath.Join(*dirFlag, product.Image)
		if _, err := os.Stat(imagePath); err != nil {
			logger.Warnf("Skipping %s: image file %s missing", product.ID, product.Image)
			skipped++
			continue
		}

		price := ""
		if product.Price != nil {
			price = fmt.Sprintf("%.2f", *product.Price)
		}
		part := utils.PartUpload{
			Title:       product.ID,
			SubTitle:    product.Name,
			Description: product.Description,
			Price:       price,
		}

		if err := client.CreatePart(ctx, categoryID, part, imagePath); err != nil {
			logger.Warnf("Upload failed for %s: %v", product.ID, err)
			failed++
			continue
		}
		uploaded++
	}

	logger.Infof("Upload complete: %d uploaded, %d skipped, %d failed", uploaded, skipped, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
