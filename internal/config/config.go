package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"catalog-scraper/internal/types"
)

// Catalog is the structure of the catalog.yml file: the site origin plus the
// category/style matrix the crawler walks. Credentials never live here; they
// come from the environment.
type Catalog struct {
	BaseURL    string           `yaml:"base_url"`
	Styles     []string         `yaml:"styles"`
	Categories []types.Category `yaml:"categories"`
}

// Load reads and validates the catalog config file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate reports configuration errors once, up front
func (c *Catalog) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("config: base_url is required")
	}
	if len(c.Styles) == 0 {
		return fmt.Errorf("config: at least one style code is required")
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("config: at least one category is required")
	}
	for i, cat := range c.Categories {
		if cat.ID == "" || cat.Slug == "" {
			return fmt.Errorf("config: category %d is missing id or slug", i)
		}
	}
	return nil
}
