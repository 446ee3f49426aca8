package adapters

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"catalog-scraper/internal/types"
	"catalog-scraper/utils"
)

// cardSelectors are tried in order against a collection page; the first one
// matching at least one element wins. They cover the grid markup of the
// storefront themes the site has shipped.
var cardSelectors = []string{
	"div.grid__item",
	"div.product-card",
	"li.grid__item",
	"li.product-card",
}

// descriptionSelectors are tried in order against a product page; the first
// one yielding non-empty text wins.
var descriptionSelectors = []string{
	"div.product-description",
	"div#ProductDescription",
	"div#product_description",
	"div[itemprop='description']",
}

var (
	productIDPattern = regexp.MustCompile(`[A-Za-z0-9]+/[A-Za-z0-9]+`)
	nonPriceChars    = regexp.MustCompile(`[^0-9.]+`)
)

// JKCabinetryAdapter handles link extraction and product parsing for the
// J&K Cabinetry storefront.
type JKCabinetryAdapter struct {
	*BaseAdapter
}

// NewJKCabinetryAdapter creates a new J&K Cabinetry adapter
func NewJKCabinetryAdapter(config *types.Config, logger types.Logger) *JKCabinetryAdapter {
	return &JKCabinetryAdapter{
		BaseAdapter: NewBaseAdapter(config, logger),
	}
}

// CollectionPageURL builds the listing URL for one (style, category) pair.
// Page 1 carries no page parameter; later pages append one.
func (a *JKCabinetryAdapter) CollectionPageURL(style, slug string, page int) string {
	base := fmt.Sprintf("%s/collections/%s-%s", a.config.BaseURL, style, slug)
	if page <= 1 {
		return base
	}
	return fmt.Sprintf("%s?page=%d", base, page)
}

// ExtractProductLinks returns the product detail URLs found on a collection
// page. Strategies are tried in order and the first one producing at least
// one URL wins: the embedded data-events JSON blob, then the known card
// selectors, then a generic scan of product-classed elements. Malformed
// input never fails; it degrades to the next strategy or an empty result.
func (a *JKCabinetryAdapter) ExtractProductLinks(doc *goquery.Document) []string {
	if links := a.linksFromEventData(doc); len(links) > 0 {
		a.logger.Debugf("Extracted %d product links from data-events payload", len(links))
		return links
	}
	if links := a.linksFromProductCards(doc); len(links) > 0 {
		a.logger.Debugf("Extracted %d product links from card selectors", len(links))
		return links
	}
	links := a.linksFromClassScan(doc)
	if len(links) > 0 {
		a.logger.Debugf("Extracted %d product links from generic class scan", len(links))
	}
	return links
}

// collectionEvent mirrors the slice of the Shopify analytics payload the
// extractor walks: collection_viewed -> collection -> productVariants ->
// product -> url.
type collectionEvent struct {
	Collection struct {
		ProductVariants []struct {
			Product struct {
				URL string `json:"url"`
			} `json:"product"`
		} `json:"productVariants"`
	} `json:"collection"`
}

func (a *JKCabinetryAdapter) linksFromEventData(doc *goquery.Document) []string {
	var links []string

	doc.Find("script[data-events]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		raw := s.AttrOr("data-events", "")
		if raw == "" {
			return true
		}

		// The payload is HTML-entity escaped JSON of [name, details] pairs
		decoded := html.UnescapeString(raw)
		var events []json.RawMessage
		if err := json.Unmarshal([]byte(decoded), &events); err != nil {
			a.logger.Debugf("Skipping malformed data-events payload: %v", err)
			return true
		}

		for _, event := range events {
			var pair []json.RawMessage
			if err := json.Unmarshal(event, &pair); err != nil || len(pair) != 2 {
				continue
			}
			var name string
			if err := json.Unmarshal(pair[0], &name); err != nil || name != "collection_viewed" {
				continue
			}
			var details collectionEvent
			if err := json.Unmarshal(pair[1], &details); err != nil {
				continue
			}
			for _, variant := range details.Collection.ProductVariants {
				if u := strings.TrimSpace(variant.Product.URL); u != "" {
					links = append(links, u)
				}
			}
		}

		// No need to inspect further scripts once one payload yielded links
		return len(links) == 0
	})

	return links
}

func (a *JKCabinetryAdapter) linksFromProductCards(doc *goquery.Document) []string {
	var cards *goquery.Selection
	for _, sel := range cardSelectors {
		found := doc.Find(sel)
		if found.Length() > 0 {
			cards = found
			break
		}
	}
	if cards == nil {
		return nil
	}

	var links []string
	cards.Each(func(i int, card *goquery.Selection) {
		anchor := card.Find("a[href]").First()
		if href := strings.TrimSpace(anchor.AttrOr("href", "")); href != "" {
			links = append(links, href)
		}
	})
	return links
}

func (a *JKCabinetryAdapter) linksFromClassScan(doc *goquery.Document) []string {
	var links []string
	doc.Find("[class*='product']").Each(func(i int, elem *goquery.Selection) {
		anchor := elem.Find("a[href]").First()
		if href := strings.TrimSpace(anchor.AttrOr("href", "")); href != "" {
			links = append(links, href)
		}
	})
	return links
}

// ParseProductPage extracts a Product and the high-resolution image URL from
// a product detail page. Every field degrades to its default on failure; the
// only condition producing no result is the absence of any image reference.
func (a *JKCabinetryAdapter) ParseProductPage(doc *goquery.Document, pageURL string) (types.Product, string, bool) {
	title := strings.TrimSpace(doc.Find("h1").First().Text())

	// Product IDs lead the title, e.g. "S8/SB30 Sink Base Cabinet"
	id := productIDPattern.FindString(title)
	if id == "" {
		id = title
	}

	var price *float64
	if text := strings.TrimSpace(doc.Find("[class*='price']").First().Text()); text != "" {
		cleaned := nonPriceChars.ReplaceAllString(text, "")
		if cleaned != "" {
			if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
				price = &v
			}
		}
	}

	desc := ""
	for _, sel := range descriptionSelectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			desc = text
			break
		}
	}
	if desc == "" {
		desc = strings.TrimSpace(doc.Find("meta[name='description']").AttrOr("content", ""))
	}

	imageURL := strings.TrimSpace(doc.Find("meta[property='og:image']").AttrOr("content", ""))
	if imageURL == "" {
		imageURL = strings.TrimSpace(doc.Find("img[src]").First().AttrOr("src", ""))
	}
	if imageURL == "" {
		a.logger.Debugf("No image reference on %s, skipping", pageURL)
		return types.Product{}, "", false
	}

	highRes := utils.StripResolutionSuffix(imageURL)

	product := types.Product{
		ID:          id,
		Name:        title,
		Price:       price,
		Description: desc,
		Image:       utils.ImageFilename(imageURL),
	}
	return product, a.AbsoluteURL(highRes), true
}
