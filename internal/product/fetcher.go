// Package product turns one (PDP URL, pincode) pair into a ProductRecord.
// The fetcher orchestrates the full resolution chain: locality lookup,
// title scrape, store resolution, delivery estimate, then the catalog
// call whose payload feeds the per-field extractors.
package product

import (
	"context"
	"time"

	"zepto-scraper/internal/common/logger"
	"zepto-scraper/internal/document"
	"zepto-scraper/internal/zepto"
)

type storeResolver interface {
	Resolve(ctx context.Context, pincode string) (*StoreResolution, error)
}

type catalogClient interface {
	ResolveETA(ctx context.Context, coord zepto.Coordinate, storeID string, maxAttempts int) (string, error)
	FetchCatalogDetail(ctx context.Context, sku, storeID string) (document.Doc, bool, error)
}

type localityResolver interface {
	LocalityFor(ctx context.Context, pincode, country string) string
}

type titleScraper interface {
	Title(ctx context.Context, pdpURL string) string
}

// Config carries the tags stamped onto every record plus the knobs the
// fetch chain needs.
type Config struct {
	Platform    string
	BrandTag    string
	Country     string
	PDPBaseURL  string
	ETAAttempts int
}

type Fetcher struct {
	cfg     Config
	stores  storeResolver
	catalog catalogClient
	geo     localityResolver
	titles  titleScraper
	logger  logger.Logger

	// now is swappable for tests.
	now func() time.Time
}

func NewFetcher(cfg Config, stores storeResolver, catalog catalogClient, geo localityResolver, titles titleScraper, log logger.Logger) *Fetcher {
	return &Fetcher{
		cfg:     cfg,
		stores:  stores,
		catalog: catalog,
		geo:     geo,
		titles:  titles,
		logger:  log.WithFields(map[string]interface{}{"component": "product_fetcher"}),
		now:     time.Now,
	}
}

// Fetch resolves one product. A nil record with a non-nil error means the
// chain broke before a verdict; a confirmed-absent SKU yields the sentinel
// record and no error. Locality, title scrape, and the delivery estimate
// are best-effort: their failure degrades fields, never the whole record.
func (f *Fetcher) Fetch(ctx context.Context, pdpURL, pincode string) (*ProductRecord, error) {
	sourceDate := SourceDate(f.now())
	sku := SKUFromURL(pdpURL)

	log := f.logger.WithFields(map[string]interface{}{"sku": sku, "pincode": pincode})

	city := f.geo.LocalityFor(ctx, pincode, f.cfg.Country)
	scrapedTitle := f.titles.Title(ctx, pdpURL)

	res, err := f.stores.Resolve(ctx, pincode)
	if err != nil {
		log.WithError(err).Error("store resolution failed", nil)
		return nil, err
	}

	eta := ""
	if raw, etaErr := f.catalog.ResolveETA(ctx, res.Coordinate, res.StoreID, f.cfg.ETAAttempts); etaErr == nil {
		eta = zepto.ParseEstimate(raw).MinutesText()
	} else {
		log.WithError(etaErr).Warn("continuing without delivery estimate", nil)
	}

	doc, notFound, err := f.catalog.FetchCatalogDetail(ctx, sku, res.StoreID)
	if err != nil {
		log.WithError(err).Error("catalog fetch failed", nil)
		return nil, err
	}
	if notFound {
		log.Info("product not listed at store", map[string]interface{}{"storeId": res.StoreID})
		return NewNotFoundRecord(sourceDate, f.cfg.Platform, f.cfg.BrandTag, city, sku, pincode, eta), nil
	}

	record := &ProductRecord{
		SourceDate:  sourceDate,
		Platform:    f.cfg.Platform,
		BrandTag:    f.cfg.BrandTag,
		City:        city,
		SKU:         sku,
		Pincode:     pincode,
		Title:       selectTitle(scrapedTitle, doc),
		MRP:         extractMRP(doc),
		LivePrice:   extractLivePrice(doc),
		IsAvailable: extractAvailability(doc),
		ETA:         eta,

		Brand:        extractBrand(doc),
		CanonicalURL: extractCanonicalURL(doc, f.cfg.PDPBaseURL, pdpURL),
		PackSize:     extractPackSize(doc),
	}

	log.Info("product resolved", map[string]interface{}{
		"title":     record.Title,
		"available": record.IsAvailable,
		"price":     record.LivePrice,
	})
	return record, nil
}

// selectTitle prefers the PDP-scraped title, then the catalog name, then
// the "Unknown" placeholder.
func selectTitle(scraped string, doc document.Doc) string {
	if scraped != "" {
		return scraped
	}
	if name := extractName(doc); name != "" {
		return name
	}
	return "Unknown"
}
