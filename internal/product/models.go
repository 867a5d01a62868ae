// internal/product/models.go
package product

import (
	"strings"
	"time"
)

// Availability is a tri-state: a confirmed in-stock "Yes", a confirmed
// out-of-stock "No", or "Unknown" when the stock field could not be
// determined at all.
const (
	AvailabilityYes     = "Yes"
	AvailabilityNo      = "No"
	AvailabilityUnknown = "Unknown"

	// NotFoundSentinel marks a confirmed-absent SKU in both the title
	// and availability fields, distinguishing it from a resolution
	// failure (which yields no record).
	NotFoundSentinel = "Item Not Found"
)

// ProductRecord is the terminal artifact of one resolution chain.
type ProductRecord struct {
	SourceDate  string `json:"source_date"`
	Platform    string `json:"platform"`
	BrandTag    string `json:"f_brand"`
	City        string `json:"city"`
	SKU         string `json:"sku"`
	Pincode     string `json:"pincode"`
	Title       string `json:"title"`
	MRP         string `json:"mrp"`
	LivePrice   string `json:"live_price"`
	IsAvailable string `json:"is_available"`
	ETA         string `json:"edt"`

	// Extracted alongside the core fields; persisted by the sinks.
	Brand        string `json:"brand,omitempty"`
	CanonicalURL string `json:"canonical_url,omitempty"`
	PackSize     string `json:"pack_size,omitempty"`
}

// SourceDate returns today's date in the record's DD-MM-YYYY format.
func SourceDate(now time.Time) string {
	return now.Format("02-01-2006")
}

// SKUFromURL derives the SKU as the last path segment of a PDP URL,
// stripped of any query string.
func SKUFromURL(pdpURL string) string {
	trimmed := pdpURL
	if i := strings.Index(trimmed, "?"); i >= 0 {
		trimmed = trimmed[:i]
	}
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	return trimmed
}

// NewNotFoundRecord builds the sentinel record for a confirmed-absent SKU.
// This is a success outcome: the upstream authoritatively said the product
// does not exist at this store.
func NewNotFoundRecord(sourceDate, platform, brandTag, city, sku, pincode, eta string) *ProductRecord {
	return &ProductRecord{
		SourceDate:  sourceDate,
		Platform:    platform,
		BrandTag:    brandTag,
		City:        city,
		SKU:         sku,
		Pincode:     pincode,
		Title:       NotFoundSentinel,
		MRP:         "",
		LivePrice:   "",
		IsAvailable: NotFoundSentinel,
		ETA:         eta,
	}
}
