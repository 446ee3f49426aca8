package types

import "time"

// Product represents one catalog item scraped from a product detail page.
// Price is nil when the page exposes no parsable numeric price; Image is the
// local filename of the downloaded asset, empty when no image was saved.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
}

// Category identifies one product category of the storefront. Slug is the
// collection path segment; combined with a style code it builds listing URLs
// like /collections/s8-sink-base-cabinet.
type Category struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	Slug string `yaml:"slug" json:"slug"`
}

// CategoryResult represents the crawl outcome for a single category
type CategoryResult struct {
	CategoryID string    `json:"category_id"`
	Name       string    `json:"name"`
	Products   []Product `json:"products"`
	Error      string    `json:"error,omitempty"`
}

// CrawlResult represents the complete crawl outcome
type CrawlResult struct {
	Categories []CategoryResult `json:"categories"`
}

// Config holds the configuration for the crawler
type Config struct {
	BaseURL            string
	OutputDir          string
	RequestDelay       time.Duration
	CategoryDelay      time.Duration
	MaxRetries         int
	Timeout            time.Duration
	MaxPages           int
	UseHeadlessBrowser bool
	UserAgent          string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:            "https://www.jkcabinetry.com",
		OutputDir:          "output",
		RequestDelay:       1 * time.Second,
		CategoryDelay:      2 * time.Second,
		MaxRetries:         3,
		Timeout:            30 * time.Second,
		MaxPages:           20,
		UseHeadlessBrowser: false,
		UserAgent:          "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0 Safari/537.36",
	}
}

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
