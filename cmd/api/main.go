package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"catalog-scraper/extractor"
	"catalog-scraper/internal/config"
	"catalog-scraper/internal/types"
)

// APIRequest represents the request body for the API. An empty category list
// means every configured category.
type APIRequest struct {
	CategoryIDs []string `json:"category_ids"`
}

// APIResponse represents the response from the API
type APIResponse struct {
	Success bool               `json:"success"`
	Data    *types.CrawlResult `json:"data,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// Server holds the API server configuration
type Server struct {
	logger  *logrus.Logger
	config  *types.Config
	catalog *config.Catalog
}

// NewServer creates a new API server
func NewServer(configPath string) (*Server, error) {
	// Load .env file if present
	_ = godotenv.Load()

	// Setup logging
	logger := logrus.New()

	// Set timestamp format with milliseconds
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logger.SetLevel(level)
		}
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	catalog, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	cfg := types.DefaultConfig()
	cfg.BaseURL = catalog.BaseURL

	return &Server{
		logger:  logger,
		config:  cfg,
		catalog: catalog,
	}, nil
}

// handleExtract handles the extraction API endpoint
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	// Set CORS headers
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	// Handle preflight requests
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	// Only allow POST requests
	if r.Method != "POST" {
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse request body
	var req APIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	categories := s.selectCategories(req.CategoryIDs)
	if len(categories) == 0 {
		s.sendError(w, "No matching categories", http.StatusBadRequest)
		return
	}

	s.logger.Infof("API request received for %d categories", len(categories))

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	catalogExtractor := extractor.NewCatalogExtractor(s.config, s.logger)
	defer catalogExtractor.Close()

	results, err := catalogExtractor.ExtractAll(ctx, categories, s.catalog.Styles)
	if err != nil {
		s.logger.Warnf("Crawl finished with error: %v", err)
	}

	response := APIResponse{
		Success: true,
		Data:    &types.CrawlResult{Categories: results},
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Errorf("Failed to encode response: %v", err)
	}
}

// selectCategories filters the configured categories by the requested IDs;
// an empty request selects all of them.
func (s *Server) selectCategories(ids []string) []types.Category {
	if len(ids) == 0 {
		return s.catalog.Categories
	}

	wanted := make(map[string]bool)
	for _, id := range ids {
		wanted[strings.TrimSpace(id)] = true
	}

	var categories []types.Category
	for _, cat := range s.catalog.Categories {
		if wanted[cat.ID] {
			categories = append(categories, cat)
		}
	}
	return categories
}

// sendError sends an error response
func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	response := APIResponse{
		Success: false,
		Error:   message,
	}

	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Errorf("Failed to encode error response: %v", err)
	}
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

// Start starts the API server
func (s *Server) Start(port string) error {
	// Setup routes
	http.HandleFunc("/extract", s.handleExtract)
	http.HandleFunc("/health", s.handleHealth)

	s.logger.Infof("Starting API server on port %s", port)
	s.logger.Info("Available endpoints:")
	s.logger.Info("  POST /extract - Crawl the configured categories")
	s.logger.Info("  GET  /health  - Health check")

	return http.ListenAndServe(":"+port, nil)
}

func main() {
	// Get port from environment variable, default to 8080
	serverPort := "8080"
	if envPort := os.Getenv("API_PORT"); envPort != "" {
		serverPort = envPort
		fmt.Printf("Using port from environment variable API_PORT: %s\n", serverPort)
	} else {
		fmt.Printf("No API_PORT environment variable found, using default: %s\n", serverPort)
	}

	configPath := "catalog.yml"
	if envPath := os.Getenv("CATALOG_CONFIG"); envPath != "" {
		configPath = envPath
	}

	server, err := NewServer(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}

	if err := server.Start(serverPort); err != nil {
		server.logger.Fatalf("Server failed: %v", err)
	}
}
