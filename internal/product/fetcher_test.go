// internal/product/fetcher_test.go
package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"zepto-scraper/internal/common/logger"
	"zepto-scraper/internal/document"
	"zepto-scraper/internal/zepto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStores struct {
	res   *StoreResolution
	err   error
	calls int
}

func (f *fakeStores) Resolve(ctx context.Context, pincode string) (*StoreResolution, error) {
	f.calls++
	return f.res, f.err
}

type fakeCatalog struct {
	etaRaw string
	etaErr error

	doc      document.Doc
	notFound bool
	err      error

	etaCalls     int
	catalogCalls int
}

func (f *fakeCatalog) ResolveETA(ctx context.Context, coord zepto.Coordinate, storeID string, maxAttempts int) (string, error) {
	f.etaCalls++
	return f.etaRaw, f.etaErr
}

func (f *fakeCatalog) FetchCatalogDetail(ctx context.Context, sku, storeID string) (document.Doc, bool, error) {
	f.catalogCalls++
	return f.doc, f.notFound, f.err
}

type fakeGeo struct{ city string }

func (f *fakeGeo) LocalityFor(ctx context.Context, pincode, country string) string { return f.city }

type fakeTitles struct{ title string }

func (f *fakeTitles) Title(ctx context.Context, pdpURL string) string { return f.title }

func testFetcherConfig() Config {
	return Config{
		Platform:    "zepto",
		BrandTag:    "origami",
		Country:     "India",
		PDPBaseURL:  "https://www.zeptonow.com",
		ETAAttempts: 5,
	}
}

func newTestFetcher(t *testing.T, stores *fakeStores, catalog *fakeCatalog, geo *fakeGeo, titles *fakeTitles) *Fetcher {
	t.Helper()
	f := NewFetcher(testFetcherConfig(), stores, catalog, geo, titles, logger.NewTestLogger(t))
	f.now = func() time.Time { return time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC) }
	return f
}

func catalogDoc(t *testing.T, raw string) document.Doc {
	t.Helper()
	doc, err := document.Parse([]byte(raw))
	require.NoError(t, err)
	return doc
}

func TestFetchBuildsFullRecord(t *testing.T) {
	stores := &fakeStores{res: &StoreResolution{
		Coordinate: zepto.Coordinate{Latitude: 19.07, Longitude: 72.87},
		StoreID:    "store-1",
	}}
	catalog := &fakeCatalog{
		etaRaw: "Delivery in 8 mins",
		doc: catalogDoc(t, `{"product":{
			"id":"prod-42",
			"name":"Origami Face Tissue",
			"brand":"Origami",
			"storeProducts":[{
				"discountedSellingPrice":9900,
				"sellingPrice":12000,
				"outOfStock":false,
				"productVariant":{"mrp":12550,"formattedPacksize":"100 pulls"}
			}]
		}}`),
	}

	f := newTestFetcher(t, stores, catalog, &fakeGeo{city: "Mumbai"}, &fakeTitles{})

	rec, err := f.Fetch(context.Background(), "https://www.zeptonow.com/pn/tissue/pvid/sku-9?ref=x", "400001")
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "05-03-2024", rec.SourceDate)
	assert.Equal(t, "zepto", rec.Platform)
	assert.Equal(t, "origami", rec.BrandTag)
	assert.Equal(t, "Mumbai", rec.City)
	assert.Equal(t, "sku-9", rec.SKU)
	assert.Equal(t, "400001", rec.Pincode)
	assert.Equal(t, "Origami Face Tissue", rec.Title)
	assert.Equal(t, "125.50", rec.MRP)
	assert.Equal(t, "99.00", rec.LivePrice)
	assert.Equal(t, AvailabilityYes, rec.IsAvailable)
	assert.Equal(t, "8", rec.ETA)
	assert.Equal(t, "Origami", rec.Brand)
	assert.Equal(t, "https://www.zeptonow.com/product/prod-42", rec.CanonicalURL)
	assert.Equal(t, "100 pulls", rec.PackSize)
}

func TestFetchStoreResolutionFailureYieldsNoRecord(t *testing.T) {
	stores := &fakeStores{err: errors.New("not serviceable")}
	catalog := &fakeCatalog{}

	f := newTestFetcher(t, stores, catalog, &fakeGeo{}, &fakeTitles{})

	rec, err := f.Fetch(context.Background(), "https://x/pvid/sku-9", "400001")
	assert.Error(t, err)
	assert.Nil(t, rec)

	// Without a store there is nothing to ask about.
	assert.Zero(t, catalog.etaCalls)
	assert.Zero(t, catalog.catalogCalls)
}

func TestFetchNotFoundSentinel(t *testing.T) {
	stores := &fakeStores{res: &StoreResolution{StoreID: "store-1"}}
	catalog := &fakeCatalog{etaRaw: "10 mins", notFound: true}

	f := newTestFetcher(t, stores, catalog, &fakeGeo{city: "Pune"}, &fakeTitles{title: "ignored"})

	rec, err := f.Fetch(context.Background(), "https://x/pvid/sku-9", "411001")
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, NotFoundSentinel, rec.Title)
	assert.Equal(t, NotFoundSentinel, rec.IsAvailable)
	assert.Equal(t, "Pune", rec.City)
	assert.Equal(t, "10", rec.ETA)
	assert.Empty(t, rec.LivePrice)
}

func TestFetchCatalogErrorYieldsNoRecord(t *testing.T) {
	stores := &fakeStores{res: &StoreResolution{StoreID: "store-1"}}
	catalog := &fakeCatalog{err: errors.New("upstream 403")}

	f := newTestFetcher(t, stores, catalog, &fakeGeo{}, &fakeTitles{})

	rec, err := f.Fetch(context.Background(), "https://x/pvid/sku-9", "400001")
	assert.Error(t, err)
	assert.Nil(t, rec)
}

func TestFetchContinuesWithoutETA(t *testing.T) {
	stores := &fakeStores{res: &StoreResolution{StoreID: "store-1"}}
	catalog := &fakeCatalog{
		etaErr: errors.New("eta exhausted"),
		doc:    catalogDoc(t, `{"product":{"name":"Tissue","storeProducts":[{"outOfStock":true}]}}`),
	}

	f := newTestFetcher(t, stores, catalog, &fakeGeo{}, &fakeTitles{})

	rec, err := f.Fetch(context.Background(), "https://x/pvid/sku-9", "400001")
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Empty(t, rec.ETA)
	assert.Equal(t, AvailabilityNo, rec.IsAvailable)
}

func TestFetchTitleSelection(t *testing.T) {
	tests := []struct {
		name    string
		scraped string
		body    string
		want    string
	}{
		{
			name:    "scraped title wins",
			scraped: "Scraped Name",
			body:    `{"product":{"name":"API Name"}}`,
			want:    "Scraped Name",
		},
		{
			name: "api name when scrape empty",
			body: `{"product":{"name":"API Name"}}`,
			want: "API Name",
		},
		{
			name: "placeholder when both absent",
			body: `{"product":{}}`,
			want: "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stores := &fakeStores{res: &StoreResolution{StoreID: "store-1"}}
			catalog := &fakeCatalog{etaRaw: "5 mins", doc: catalogDoc(t, tt.body)}

			f := newTestFetcher(t, stores, catalog, &fakeGeo{}, &fakeTitles{title: tt.scraped})

			rec, err := f.Fetch(context.Background(), "https://x/pvid/sku-9", "400001")
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Title)
		})
	}
}
