// Package validation checks batch input items before any network work is
// submitted for them.
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// itemSchema describes one batch input item: a product page URL plus the
// postal code to resolve it against. Postal codes are opaque keys and are
// only required to be non-empty.
var itemSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"url": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
			"pattern":   "^https?://",
		},
		"pincode": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
	},
	"required":             []string{"url", "pincode"},
	"additionalProperties": true,
}

// ValidateItem validates one batch input item against the item schema.
func ValidateItem(item map[string]interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(itemSchema)
	documentLoader := gojsonschema.NewGoLoader(item)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("input validation failed: %v", errs)
	}

	return nil
}
