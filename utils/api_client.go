package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"catalog-scraper/internal/types"
)

// APIClient talks to the downstream catalog API that receives harvested
// products. Every request carries the Bearer token it was constructed with.
type APIClient struct {
	baseURL string
	token   string
	client  *http.Client
	logger  types.Logger
}

// PartUpload is the form payload for one catalog part
type PartUpload struct {
	Title       string
	SubTitle    string
	Description string
	Price       string
}

// NewAPIClient creates a new catalog API client
func NewAPIClient(baseURL, token string, logger types.Logger) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// CreatePart uploads one part with its image as multipart form data to
// /parts/create-parts/{categoryID}.
func (c *APIClient) CreatePart(ctx context.Context, categoryID string, part PartUpload, imagePath string) error {
	img, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer img.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       part.Title,
		"subTitle":    part.SubTitle,
		"description": part.Description,
		"price":       part.Price,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	fileName := filepath.Base(imagePath)
	mimeType := mime.TypeByExtension(filepath.Ext(fileName))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`, fileName))
	header.Set("Content-Type", mimeType)
	filePart, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(filePart, img); err != nil {
		return fmt.Errorf("failed to copy image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	url := fmt.Sprintf("%s/parts/create-parts/%s", c.baseURL, categoryID)
	req, err := http.NewRequestWithContext(ctx, "POST", url, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c.logger.Debugf("Uploading part %q (%s) to %s", part.Title, fileName, url)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode >= 400 {
		return fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	c.logger.Debugf("Upload of %q succeeded with status %d", part.Title, resp.StatusCode)
	return nil
}

// Ping checks whether the catalog API is reachable
func (c *APIClient) Ping(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode < 400
}
