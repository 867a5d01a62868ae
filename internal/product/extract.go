// internal/product/extract.go
package product

import (
	"fmt"

	"zepto-scraper/internal/document"
)

// Each extractor below walks its own path independently so that one
// malformed branch of the payload never poisons the others. A failed
// traversal produces the field's neutral value, not an error.

func extractName(doc document.Doc) string {
	name, ok := doc.String("product", "name")
	if !ok {
		return ""
	}
	return name
}

func extractBrand(doc document.Doc) string {
	brand, ok := doc.String("product", "brand")
	if !ok {
		return ""
	}
	return brand
}

// extractCanonicalURL rebuilds the PDP URL from the upstream product id;
// when the id is missing the submitted URL stands in.
func extractCanonicalURL(doc document.Doc, pdpBase, fallback string) string {
	id, ok := doc.String("product", "id")
	if !ok || id == "" {
		return fallback
	}
	return fmt.Sprintf("%s/product/%s", pdpBase, id)
}

// extractMRP reads the sticker price in minor currency units and converts
// to the major unit.
func extractMRP(doc document.Doc) string {
	minor, ok := doc.Float("product", "storeProducts", 0, "productVariant", "mrp")
	if !ok {
		return ""
	}
	return formatPrice(minor)
}

// extractLivePrice prefers the discounted selling price and falls back to
// the plain selling price; both are in minor currency units.
func extractLivePrice(doc document.Doc) string {
	if minor, ok := doc.Float("product", "storeProducts", 0, "discountedSellingPrice"); ok {
		return formatPrice(minor)
	}
	if minor, ok := doc.Float("product", "storeProducts", 0, "sellingPrice"); ok {
		return formatPrice(minor)
	}
	return ""
}

func extractAvailability(doc document.Doc) string {
	out, ok := doc.Bool("product", "storeProducts", 0, "outOfStock")
	if !ok {
		return AvailabilityUnknown
	}
	if out {
		return AvailabilityNo
	}
	return AvailabilityYes
}

func extractPackSize(doc document.Doc) string {
	size, ok := doc.String("product", "storeProducts", 0, "productVariant", "formattedPacksize")
	if !ok {
		return ""
	}
	return size
}

func formatPrice(minorUnits float64) string {
	return fmt.Sprintf("%.2f", minorUnits/100)
}
