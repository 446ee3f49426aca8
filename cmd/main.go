package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"catalog-scraper/extractor"
	"catalog-scraper/internal/config"
	"catalog-scraper/internal/types"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	// Parse command line flags
	var (
		configFlag    = flag.String("config", "catalog.yml", "Path to the catalog config file")
		outputFlag    = flag.String("output", "output", "Directory for per-category catalogs and images")
		baseURLFlag   = flag.String("base-url", "", "Override the site base URL from the config file")
		requestDelay  = flag.Duration("delay", 1*time.Second, "Delay between requests")
		categoryDelay = flag.Duration("category-delay", 2*time.Second, "Delay between categories")
		maxRetries    = flag.Int("retries", 3, "Maximum retry attempts per request")
		timeout       = flag.Duration("timeout", 30*time.Second, "Request timeout")
		maxPages      = flag.Int("max-pages", 20, "Page cap per collection to guarantee termination")
		useBrowser    = flag.Bool("browser", false, "Use headless browser for JavaScript-heavy themes")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	// Setup logging
	logger := logrus.New()

	// Set timestamp format with milliseconds
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	// Set log level from LOG_LEVEL env if present
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logger.SetLevel(level)
		}
	} else if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	// Load the category/style matrix
	catalog, err := config.Load(*configFlag)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Create configuration
	cfg := types.DefaultConfig()
	cfg.BaseURL = catalog.BaseURL
	cfg.OutputDir = *outputFlag
	cfg.RequestDelay = *requestDelay
	cfg.CategoryDelay = *categoryDelay
	cfg.MaxRetries = *maxRetries
	cfg.Timeout = *timeout
	cfg.MaxPages = *maxPages
	cfg.UseHeadlessBrowser = *useBrowser
	if *baseURLFlag != "" {
		cfg.BaseURL = *baseURLFlag
	}

	ctx := context.Background()

	catalogExtractor := extractor.NewCatalogExtractor(cfg, logger)
	defer catalogExtractor.Close()

	// Best-effort login when credentials are configured; anonymous crawls
	// still work, some prices may be hidden
	email, password := os.Getenv("JK_EMAIL"), os.Getenv("JK_PASSWORD")
	if email != "" && password != "" {
		if !catalogExtractor.Login(ctx, email, password) {
			logger.Info("Continuing without login, some prices may be hidden")
		}
	}

	startTime := time.Now()
	results, err := catalogExtractor.ExtractAll(ctx, catalog.Categories, catalog.Styles)
	if err != nil {
		logger.Fatalf("Crawl aborted: %v", err)
	}

	// Print summary
	totalProducts := 0
	failedCategories := 0
	for _, result := range results {
		totalProducts += len(result.Products)
		if result.Error != "" {
			failedCategories++
		}
	}
	logger.Infof("Crawl completed in %v", time.Since(startTime))
	logger.Infof("Categories processed: %d (%d failed)", len(results), failedCategories)
	logger.Infof("Total products collected: %d", totalProducts)
}
