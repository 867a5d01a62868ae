// internal/zepto/catalog.go
package zepto

import (
	"context"
	"net/url"
	"time"

	nethttp "net/http"

	stderrors "zepto-scraper/internal/common/errors"
	"zepto-scraper/internal/document"
)

// FetchCatalogDetail calls the catalog product-detail endpoint for a SKU
// at a store. A fixed courtesy pause precedes the call; the call itself
// executes exactly once regardless of outcome. notFound reports a
// confirmed-absent SKU (HTTP 404), which is a success path for callers,
// not an error.
func (c *Client) FetchCatalogDetail(ctx context.Context, sku, storeID string) (doc document.Doc, notFound bool, err error) {
	c.sleep(time.Duration(c.cfg.CataloguePause) * time.Second)

	id := c.newIdentity()

	params := url.Values{}
	params.Set("product_variant_id", sku)
	params.Set("store_id", storeID)
	params.Set("is_zepto_three_enabled", "true")

	c.logger.Info("fetching catalog detail", map[string]interface{}{
		"sku":     sku,
		"storeId": storeID,
	})

	resp, err := c.get(ctx, c.cfg.APIBaseURL, "/api/v1/inventory/catalogue/product-detail/", params, id, storeID)
	if err != nil {
		return nil, false, stderrors.NewTransportError(err)
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, false, stderrors.NewTransportError(err)
	}

	if resp.StatusCode == nethttp.StatusNotFound {
		c.logger.Info("product not found in catalog", map[string]interface{}{"sku": sku})
		return nil, true, nil
	}
	if resp.StatusCode != nethttp.StatusOK {
		return nil, false, stderrors.NewUpstreamStatusError(resp.StatusCode)
	}

	doc, parseErr := document.Parse(body)
	if parseErr != nil {
		return nil, false, stderrors.NewMalformedResponseError("catalog body not parseable")
	}

	return doc, false, nil
}
