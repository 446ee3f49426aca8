package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"catalog-scraper/adapters"
	"catalog-scraper/internal/types"
)

// CatalogExtractor drives the category x style x page crawl matrix: it
// paginates every collection, dedupes products across styles, downloads
// images and writes one products.json per category. The crawl is strictly
// sequential; pacing between requests keeps the storefront happy.
type CatalogExtractor struct {
	adapter *adapters.JKCabinetryAdapter
	config  *types.Config
	logger  types.Logger
}

// NewCatalogExtractor creates a new catalog extractor
func NewCatalogExtractor(config *types.Config, logger types.Logger) *CatalogExtractor {
	return &CatalogExtractor{
		adapter: adapters.NewJKCabinetryAdapter(config, logger),
		config:  config,
		logger:  logger,
	}
}

// Login attempts a best-effort storefront login before crawling
func (e *CatalogExtractor) Login(ctx context.Context, email, password string) bool {
	return e.adapter.Login(ctx, email, password)
}

// ExtractAll crawls every category across every style. A category that
// fails entirely only degrades the overall result; the remaining categories
// still produce valid, independently usable catalogs.
func (e *CatalogExtractor) ExtractAll(ctx context.Context, categories []types.Category, styles []string) ([]types.CategoryResult, error) {
	startTime := time.Now()
	e.logger.Infof("Starting catalog extraction for %d categories x %d styles", len(categories), len(styles))

	var results []types.CategoryResult
	for i, category := range categories {
		result, err := e.ExtractCategory(ctx, category, styles)
		if err != nil {
			e.logger.Warnf("Failed to extract category %s: %v", category.ID, err)
			result.Error = err.Error()
		}
		results = append(results, result)

		if ctx.Err() != nil {
			return results, ctx.Err()
		}
		// Pause between categories
		if i < len(categories)-1 {
			sleepCtx(ctx, e.config.CategoryDelay)
		}
	}

	e.logger.Infof("Catalog extraction completed in %v", time.Since(startTime))
	return results, nil
}

// ExtractCategory crawls one category across all styles and finalizes its
// catalog on disk: output/<categoryID>/products.json plus the downloaded
// images as siblings.
func (e *CatalogExtractor) ExtractCategory(ctx context.Context, category types.Category, styles []string) (types.CategoryResult, error) {
	startTime := time.Now()
	e.logger.Infof("Scraping category %s (%s)", category.ID, category.Name)

	result := types.CategoryResult{
		CategoryID: category.ID,
		Name:       category.Name,
	}

	dir := filepath.Join(e.config.OutputDir, category.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return result, fmt.Errorf("failed to create category directory: %w", err)
	}

	store := NewCatalogStore()
	for _, style := range styles {
		e.crawlStyle(ctx, category, style, store, dir)
		if ctx.Err() != nil {
			break
		}
	}

	result.Products = store.Values()
	if err := writeCatalog(dir, result.Products); err != nil {
		return result, err
	}

	e.logger.Infof("Finished %s: %d products in %v", category.Name, store.Len(), time.Since(startTime))
	return result, nil
}

// crawlStyle paginates one (category, style) collection until it yields no
// links, repeats itself, or hits the page cap. The seen-set only grows and
// is discarded when pagination stops, so a cyclic pagination source can
// never loop the crawler.
func (e *CatalogExtractor) crawlStyle(ctx context.Context, category types.Category, style string, store *CatalogStore, dir string) {
	seen := make(map[string]bool)

	for page := 1; page <= e.config.MaxPages; page++ {
		pageURL := e.adapter.CollectionPageURL(style, category.Slug, page)

		html, err := e.adapter.GetPageContent(ctx, pageURL)
		if err != nil {
			// Either the style does not offer this category or pagination ended
			e.logger.Debugf("Stopping style %s for %s at page %d: %v", style, category.Slug, page, err)
			return
		}
		doc, err := e.adapter.ParseHTML(html)
		if err != nil {
			e.logger.Debugf("Unparsable listing page %s: %v", pageURL, err)
			return
		}

		links := e.adapter.ExtractProductLinks(doc)
		if len(links) == 0 {
			e.logger.Debugf("No product links on %s, stopping pagination", pageURL)
			return
		}

		var newLinks []string
		for _, link := range links {
			full := e.adapter.AbsoluteURL(link)
			key := CanonicalKey(full)
			if seen[key] {
				continue
			}
			seen[key] = true
			newLinks = append(newLinks, full)
		}
		if len(newLinks) == 0 {
			e.logger.Debugf("Page %d of %s-%s repeats earlier items, stopping pagination", page, style, category.Slug)
			return
		}

		e.logger.Debugf("Page %d of %s-%s: %d links, %d new", page, style, category.Slug, len(links), len(newLinks))

		for _, full := range newLinks {
			if ctx.Err() != nil {
				return
			}
			key := CanonicalKey(full)
			// Cross-style dedup: the product was already collected under
			// another style prefix
			if store.Contains(key) {
				continue
			}
			e.processProduct(ctx, full, key, store, dir)
		}
	}

	e.logger.Warnf("Hit page cap (%d) for %s-%s", e.config.MaxPages, style, category.Slug)
}

// processProduct fetches and parses one product detail page, downloads the
// image unless it is already on disk, and inserts the product into the
// store. Any failure skips the URL with no retry.
func (e *CatalogExtractor) processProduct(ctx context.Context, productURL, key string, store *CatalogStore, dir string) {
	html, err := e.adapter.GetPageContent(ctx, productURL)
	if err != nil {
		e.logger.Warnf("Failed to fetch product page %s: %v", productURL, err)
		return
	}
	doc, err := e.adapter.ParseHTML(html)
	if err != nil {
		e.logger.Warnf("Failed to parse product page %s: %v", productURL, err)
		return
	}

	product, imageURL, ok := e.adapter.ParseProductPage(doc, productURL)
	if !ok {
		return
	}

	if product.Image != "" {
		dest := filepath.Join(dir, product.Image)
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			data, err := e.adapter.FetchBytes(ctx, imageURL)
			if err == nil {
				err = os.WriteFile(dest, data, 0o644)
			}
			if err != nil {
				e.logger.Warnf("Failed to download image %s: %v", imageURL, err)
				product.Image = ""
			}
		}
	}

	store.Put(key, product)
}

// writeCatalog serializes the category catalog to products.json
func writeCatalog(dir string, products []types.Product) error {
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	path := filepath.Join(dir, "products.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}

// Close cleans up resources
func (e *CatalogExtractor) Close() {
	if e.adapter != nil {
		e.adapter.Close()
	}
}
