package adapters

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"catalog-scraper/internal/types"
	"catalog-scraper/utils"
)

// BaseAdapter provides the fetch-and-parse plumbing shared by site adapters:
// HTTP-or-browser page retrieval, goquery parsing and URL absolutization.
type BaseAdapter struct {
	config        *types.Config
	logger        types.Logger
	httpClient    *utils.HTTPClient
	browserClient *utils.BrowserClient
}

// NewBaseAdapter creates a new base adapter with initialized HTTP and browser clients
func NewBaseAdapter(config *types.Config, logger types.Logger) *BaseAdapter {
	return &BaseAdapter{
		config:        config,
		logger:        logger,
		httpClient:    utils.NewHTTPClient(config, logger),
		browserClient: utils.NewBrowserClient(config, logger),
	}
}

// GetPageContent retrieves the HTML content of a page using either the HTTP
// client or the headless browser, per the UseHeadlessBrowser configuration.
func (b *BaseAdapter) GetPageContent(ctx context.Context, url string) (string, error) {
	if b.config.UseHeadlessBrowser {
		return b.browserClient.GetPageContent(ctx, url)
	}

	body, err := b.httpClient.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchBytes retrieves a raw payload (image assets) over plain HTTP
func (b *BaseAdapter) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	return b.httpClient.Get(ctx, url)
}

// ParseHTML parses HTML content into a goquery document
func (b *BaseAdapter) ParseHTML(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// AbsoluteURL resolves a possibly relative href against the configured site
// origin. Unparsable input is returned as-is.
func (b *BaseAdapter) AbsoluteURL(href string) string {
	href = strings.TrimSpace(href)
	base, err := url.Parse(b.config.BaseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// Config returns the config field of the BaseAdapter
func (b *BaseAdapter) Config() *types.Config {
	return b.config
}

// Close cleans up resources
func (b *BaseAdapter) Close() {
	if b.httpClient != nil {
		b.httpClient.Close()
	}
}
