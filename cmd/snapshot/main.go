package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Downloads the storefront's public products.json feed and saves it under a
// timestamped filename. Useful as a quick structural snapshot of the catalog
// without running a full crawl.
func main() {
	var (
		baseURL = flag.String("base-url", "https://www.jkcabinetry.com", "Site base URL")
		limit   = flag.Int("limit", 1000, "Maximum number of products to request")
		timeout = flag.Duration("timeout", 30*time.Second, "Request timeout")
	)
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	url := fmt.Sprintf("%s/products.json?limit=%d", *baseURL, *limit)
	logger.Infof("Downloading catalog snapshot from %s", url)

	client := &http.Client{Timeout: *timeout}
	resp, err := client.Get(url)
	if err != nil {
		logger.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Fatalf("Unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Fatalf("Failed to read response body: %v", err)
	}

	// Validate before writing so a storefront error page never lands on disk
	var payload json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		logger.Fatalf("Response is not valid JSON: %v", err)
	}

	filename := time.Now().Format("20060102_150405") + "_products.json"
	if err := os.WriteFile(filename, body, 0o644); err != nil {
		logger.Fatalf("Failed to write snapshot: %v", err)
	}

	logger.Infof("Snapshot saved to %s (%d bytes)", filename, len(body))
}
