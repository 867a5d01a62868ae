// internal/product/extract_test.go
package product

import (
	"testing"

	"zepto-scraper/internal/document"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) document.Doc {
	t.Helper()
	doc, err := document.Parse([]byte(raw))
	require.NoError(t, err)
	return doc
}

func TestExtractMRP(t *testing.T) {
	doc := mustParse(t, `{"product":{"storeProducts":[{"productVariant":{"mrp":12550}}]}}`)
	assert.Equal(t, "125.50", extractMRP(doc))

	assert.Empty(t, extractMRP(mustParse(t, `{"product":{"storeProducts":[]}}`)))
	assert.Empty(t, extractMRP(mustParse(t, `{"product":{"storeProducts":[{"productVariant":{"mrp":"12550"}}]}}`)))
}

func TestExtractLivePrice(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "discounted price preferred",
			body: `{"product":{"storeProducts":[{"discountedSellingPrice":9900,"sellingPrice":12000}]}}`,
			want: "99.00",
		},
		{
			name: "falls back to selling price",
			body: `{"product":{"storeProducts":[{"sellingPrice":12000}]}}`,
			want: "120.00",
		},
		{
			name: "neither present",
			body: `{"product":{"storeProducts":[{}]}}`,
			want: "",
		},
		{
			name: "mistyped discounted price falls through",
			body: `{"product":{"storeProducts":[{"discountedSellingPrice":"9900","sellingPrice":12000}]}}`,
			want: "120.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractLivePrice(mustParse(t, tt.body)))
		})
	}
}

func TestExtractAvailability(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "in stock",
			body: `{"product":{"storeProducts":[{"outOfStock":false}]}}`,
			want: AvailabilityYes,
		},
		{
			name: "out of stock",
			body: `{"product":{"storeProducts":[{"outOfStock":true}]}}`,
			want: AvailabilityNo,
		},
		{
			name: "field missing",
			body: `{"product":{"storeProducts":[{}]}}`,
			want: AvailabilityUnknown,
		},
		{
			name: "field mistyped",
			body: `{"product":{"storeProducts":[{"outOfStock":"yes"}]}}`,
			want: AvailabilityUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractAvailability(mustParse(t, tt.body)))
		})
	}
}

func TestExtractCanonicalURL(t *testing.T) {
	doc := mustParse(t, `{"product":{"id":"prod-42"}}`)
	assert.Equal(t, "https://www.zeptonow.com/product/prod-42",
		extractCanonicalURL(doc, "https://www.zeptonow.com", "https://submitted/url"))

	empty := mustParse(t, `{"product":{}}`)
	assert.Equal(t, "https://submitted/url",
		extractCanonicalURL(empty, "https://www.zeptonow.com", "https://submitted/url"))
}

func TestExtractPackSizeAndBrand(t *testing.T) {
	doc := mustParse(t, `{"product":{"brand":"Origami","storeProducts":[{"productVariant":{"formattedPacksize":"3 x 100 pulls"}}]}}`)

	assert.Equal(t, "Origami", extractBrand(doc))
	assert.Equal(t, "3 x 100 pulls", extractPackSize(doc))

	assert.Empty(t, extractBrand(document.Doc{}))
	assert.Empty(t, extractPackSize(document.Doc{}))
}

// One broken branch of the payload must not disturb the other extractors.
func TestExtractionIsolation(t *testing.T) {
	doc := mustParse(t, `{"product":{"name":"Face Tissue","storeProducts":"corrupt"}}`)

	assert.Equal(t, "Face Tissue", extractName(doc))
	assert.Empty(t, extractMRP(doc))
	assert.Empty(t, extractLivePrice(doc))
	assert.Equal(t, AvailabilityUnknown, extractAvailability(doc))
}
