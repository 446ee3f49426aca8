package adapters

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-scraper/internal/types"
)

func newTestAdapter(t *testing.T) *JKCabinetryAdapter {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	adapter := NewJKCabinetryAdapter(types.DefaultConfig(), logger)
	t.Cleanup(adapter.Close)
	return adapter
}

const eventDataScript = `<script data-events="[[&quot;page_viewed&quot;,{}],[&quot;collection_viewed&quot;,{&quot;collection&quot;:{&quot;productVariants&quot;:[{&quot;product&quot;:{&quot;url&quot;:&quot;/products/s8-sb30&quot;}},{&quot;product&quot;:{&quot;url&quot;:&quot;/products/s8-sb33&quot;}}]}}]]"></script>`

const cardMarkup = `
<div class="grid__item"><a href="/products/card-a">A</a></div>
<div class="grid__item"><a href="/products/card-b">B</a></div>`

func TestCollectionPageURL(t *testing.T) {
	adapter := newTestAdapter(t)

	assert.Equal(t,
		"https://www.jkcabinetry.com/collections/s8-sink-base-cabinet",
		adapter.CollectionPageURL("s8", "sink-base-cabinet", 1))
	assert.Equal(t,
		"https://www.jkcabinetry.com/collections/s8-sink-base-cabinet?page=3",
		adapter.CollectionPageURL("s8", "sink-base-cabinet", 3))
}

func TestExtractProductLinks_EventDataWinsOverCards(t *testing.T) {
	adapter := newTestAdapter(t)

	// Both a well-formed data-events payload and matching card markup: the
	// structured data result must be used exclusively
	doc, err := adapter.ParseHTML("<html><body>" + eventDataScript + cardMarkup + "</body></html>")
	require.NoError(t, err)

	links := adapter.ExtractProductLinks(doc)
	assert.ElementsMatch(t, []string{"/products/s8-sb30", "/products/s8-sb33"}, links)
}

func TestExtractProductLinks_MalformedEventDataFallsBack(t *testing.T) {
	adapter := newTestAdapter(t)

	malformed := `<script data-events="not valid json at all"></script>`
	doc, err := adapter.ParseHTML("<html><body>" + malformed + cardMarkup + "</body></html>")
	require.NoError(t, err)

	links := adapter.ExtractProductLinks(doc)
	assert.ElementsMatch(t, []string{"/products/card-a", "/products/card-b"}, links)
}

func TestExtractProductLinks_CardSelectorOrder(t *testing.T) {
	adapter := newTestAdapter(t)

	// div.grid__item matches first; the li.product-card anchors must be ignored
	page := `
<div class="grid__item"><a href="/products/from-div">x</a></div>
<li class="product-card"><a href="/products/from-li">y</a></li>`
	doc, err := adapter.ParseHTML("<html><body>" + page + "</body></html>")
	require.NoError(t, err)

	links := adapter.ExtractProductLinks(doc)
	assert.Equal(t, []string{"/products/from-div"}, links)
}

func TestExtractProductLinks_GenericClassScan(t *testing.T) {
	adapter := newTestAdapter(t)

	page := `
<section class="featured-products"><a href="/products/generic-a">a</a></section>
<div class="product_tile"><a href="/products/generic-b">b</a></div>
<div class="unrelated"><a href="/products/ignored">c</a></div>`
	doc, err := adapter.ParseHTML("<html><body>" + page + "</body></html>")
	require.NoError(t, err)

	links := adapter.ExtractProductLinks(doc)
	assert.ElementsMatch(t, []string{"/products/generic-a", "/products/generic-b"}, links)
}

func TestExtractProductLinks_EmptyPage(t *testing.T) {
	adapter := newTestAdapter(t)

	doc, err := adapter.ParseHTML("<html><body><p>nothing here</p></body></html>")
	require.NoError(t, err)

	assert.Empty(t, adapter.ExtractProductLinks(doc))
}

func TestParseProductPage_AllFields(t *testing.T) {
	adapter := newTestAdapter(t)

	page := `<html><head>
<meta property="og:image" content="https://cdn.example.com/files/sb30_352x192.jpg?v=9">
</head><body>
<h1>S8/SB30 Sink Base Cabinet</h1>
<span class="product-price">$199.50</span>
<div class="product-description">Single door sink base, 30 inch.</div>
</body></html>`
	doc, err := adapter.ParseHTML(page)
	require.NoError(t, err)

	product, imageURL, ok := adapter.ParseProductPage(doc, "https://www.jkcabinetry.com/products/s8-sb30")

	require.True(t, ok)
	assert.Equal(t, "S8/SB30", product.ID)
	assert.Equal(t, "S8/SB30 Sink Base Cabinet", product.Name)
	require.NotNil(t, product.Price)
	assert.Equal(t, 199.50, *product.Price)
	assert.Equal(t, "Single door sink base, 30 inch.", product.Description)
	assert.Equal(t, "sb30.jpg", product.Image)
	assert.Equal(t, "https://cdn.example.com/files/sb30.jpg?v=9", imageURL)
}

func TestParseProductPage_IDFallsBackToTitle(t *testing.T) {
	adapter := newTestAdapter(t)

	page := `<html><body>
<h1>Decorative Corbel</h1>
<img src="/cdn/corbel.jpg">
</body></html>`
	doc, err := adapter.ParseHTML(page)
	require.NoError(t, err)

	product, _, ok := adapter.ParseProductPage(doc, "https://www.jkcabinetry.com/products/corbel")

	require.True(t, ok)
	assert.Equal(t, "Decorative Corbel", product.ID)
	assert.Equal(t, "Decorative Corbel", product.Name)
}

func TestParseProductPage_UnparsablePriceIsAbsent(t *testing.T) {
	adapter := newTestAdapter(t)

	page := `<html><body>
<h1>S8/SB30</h1>
<span class="price">Call for pricing</span>
<img src="/cdn/sb30.jpg">
</body></html>`
	doc, err := adapter.ParseHTML(page)
	require.NoError(t, err)

	product, _, ok := adapter.ParseProductPage(doc, "https://www.jkcabinetry.com/products/s8-sb30")

	require.True(t, ok)
	assert.Nil(t, product.Price)
}

func TestParseProductPage_MetaDescriptionFallback(t *testing.T) {
	adapter := newTestAdapter(t)

	page := `<html><head>
<meta name="description" content="Meta fallback text">
</head><body>
<h1>S8/SB30</h1>
<img src="/cdn/sb30.jpg">
</body></html>`
	doc, err := adapter.ParseHTML(page)
	require.NoError(t, err)

	product, _, ok := adapter.ParseProductPage(doc, "https://www.jkcabinetry.com/products/s8-sb30")

	require.True(t, ok)
	assert.Equal(t, "Meta fallback text", product.Description)
}

func TestParseProductPage_FirstImageWhenNoOGImage(t *testing.T) {
	adapter := newTestAdapter(t)

	page := `<html><body>
<h1>S8/SB30</h1>
<img src="//cdn.example.com/files/sb30_100x100.jpg">
</body></html>`
	doc, err := adapter.ParseHTML(page)
	require.NoError(t, err)

	product, imageURL, ok := adapter.ParseProductPage(doc, "https://www.jkcabinetry.com/products/s8-sb30")

	require.True(t, ok)
	assert.Equal(t, "sb30.jpg", product.Image)
	// Protocol-relative source resolves against the site origin scheme
	assert.Equal(t, "https://cdn.example.com/files/sb30.jpg", imageURL)
}

func TestParseProductPage_NoImageNoResult(t *testing.T) {
	adapter := newTestAdapter(t)

	page := `<html><body>
<h1>S8/SB30 Sink Base Cabinet</h1>
<span class="price">$10</span>
<div class="product-description">desc</div>
</body></html>`
	doc, err := adapter.ParseHTML(page)
	require.NoError(t, err)

	_, _, ok := adapter.ParseProductPage(doc, "https://www.jkcabinetry.com/products/s8-sb30")
	assert.False(t, ok)
}
