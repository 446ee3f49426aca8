package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"catalog-scraper/internal/types"
)

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "Plain URL unchanged",
			url:      "https://www.jkcabinetry.com/products/s8-sb30",
			expected: "https://www.jkcabinetry.com/products/s8-sb30",
		},
		{
			name:     "Query stripped",
			url:      "https://www.jkcabinetry.com/products/s8-sb30?variant=123",
			expected: "https://www.jkcabinetry.com/products/s8-sb30",
		},
		{
			name:     "Fragment stripped",
			url:      "https://www.jkcabinetry.com/products/s8-sb30#reviews",
			expected: "https://www.jkcabinetry.com/products/s8-sb30",
		},
		{
			name:     "Query and fragment stripped",
			url:      "https://www.jkcabinetry.com/products/s8-sb30?variant=123#top",
			expected: "https://www.jkcabinetry.com/products/s8-sb30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalKey(tt.url))
		})
	}
}

func TestCatalogStore_PutFirstWriterWins(t *testing.T) {
	store := NewCatalogStore()

	first := types.Product{ID: "S8/SB30", Name: "first"}
	second := types.Product{ID: "S8/SB30", Name: "second"}

	key := CanonicalKey("https://www.jkcabinetry.com/products/s8-sb30?variant=1")
	assert.True(t, store.Put(key, first))

	// Same product reached through a different query string
	dupKey := CanonicalKey("https://www.jkcabinetry.com/products/s8-sb30?variant=2")
	assert.False(t, store.Put(dupKey, second))

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "first", store.Values()[0].Name)
}

func TestCatalogStore_Contains(t *testing.T) {
	store := NewCatalogStore()
	assert.False(t, store.Contains("k"))

	store.Put("k", types.Product{ID: "a"})
	assert.True(t, store.Contains("k"))
}

func TestCatalogStore_ValuesInsertionOrder(t *testing.T) {
	store := NewCatalogStore()
	store.Put("c", types.Product{ID: "c"})
	store.Put("a", types.Product{ID: "a"})
	store.Put("b", types.Product{ID: "b"})

	values := store.Values()
	assert.Len(t, values, 3)
	assert.Equal(t, "c", values[0].ID)
	assert.Equal(t, "a", values[1].ID)
	assert.Equal(t, "b", values[2].ID)
}

func TestCatalogStore_EmptyValuesNotNil(t *testing.T) {
	store := NewCatalogStore()
	// An empty category must still serialize as a JSON array, not null
	assert.NotNil(t, store.Values())
	assert.Empty(t, store.Values())
}
