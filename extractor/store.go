package extractor

import (
	"net/url"

	"catalog-scraper/internal/types"
)

// CanonicalKey normalizes a product detail URL to its deduplication
// identity: scheme, host and path with query and fragment stripped. Two
// URLs reaching the same product page through different style prefixes
// collapse to the same key.
func CanonicalKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

// CatalogStore accumulates the products of one category across all styles,
// keyed by canonical URL. First writer wins; later discoveries of the same
// key are skipped entirely. Insertion order is preserved so serialized
// catalogs are deterministic. The store is only ever mutated by the single
// orchestrator goroutine.
type CatalogStore struct {
	products map[string]types.Product
	keys     []string
}

// NewCatalogStore creates an empty catalog store
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		products: make(map[string]types.Product),
	}
}

// Put inserts the product under key if the key is absent and reports
// whether insertion happened. Existing entries are never updated.
func (s *CatalogStore) Put(key string, product types.Product) bool {
	if _, exists := s.products[key]; exists {
		return false
	}
	s.products[key] = product
	s.keys = append(s.keys, key)
	return true
}

// Contains reports whether key is already present
func (s *CatalogStore) Contains(key string) bool {
	_, exists := s.products[key]
	return exists
}

// Values returns all stored products in insertion order. The slice is never
// nil so an empty category still serializes as a JSON array.
func (s *CatalogStore) Values() []types.Product {
	values := make([]types.Product, 0, len(s.keys))
	for _, key := range s.keys {
		values = append(values, s.products[key])
	}
	return values
}

// Len returns the number of stored products
func (s *CatalogStore) Len() int {
	return len(s.products)
}
