// internal/zepto/store.go
package zepto

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	nethttp "net/http"

	stderrors "zepto-scraper/internal/common/errors"
	"zepto-scraper/internal/common/retry"
)

type layoutResponse struct {
	StoreServiceableResponse *struct {
		StoreID string `json:"storeId"`
	} `json:"storeServiceableResponse"`
}

// ResolveStore maps a coordinate to a serviceable store id via the layout
// endpoint. Up to maxAttempts tries with linear backoff; a fresh identity
// is generated for every attempt. Every non-success outcome (transport
// error, non-200, unparseable body, missing serviceability object, empty
// store id) consumes an attempt; exhausting the budget surfaces the last
// error.
func (c *Client) ResolveStore(ctx context.Context, coord Coordinate, maxAttempts int) (string, error) {
	var storeID string

	err := retry.Do(retry.Config{
		MaxAttempts: maxAttempts,
		BaseDelay:   c.cfg.BackoffBase(),
		Sleep:       c.sleep,
	}, func(attempt int) error {
		id := c.newIdentity()

		params := url.Values{}
		params.Set("latitude", formatFloat(coord.Latitude))
		params.Set("longitude", formatFloat(coord.Longitude))
		params.Set("page_type", "HOME")
		params.Set("version", "v2")
		params.Set("show_new_eta_banner", "true")

		c.logger.Info("resolving store", map[string]interface{}{
			"attempt":   attempt + 1,
			"latitude":  coord.Latitude,
			"longitude": coord.Longitude,
		})

		resp, err := c.get(ctx, c.cfg.APIBaseURL, "/api/v1/config/layout/", params, id, "")
		if err != nil {
			return stderrors.NewTransportError(err)
		}
		body, err := readBody(resp)
		if err != nil {
			return stderrors.NewTransportError(err)
		}
		if resp.StatusCode != nethttp.StatusOK {
			return stderrors.NewUpstreamStatusError(resp.StatusCode)
		}

		var layout layoutResponse
		if err := json.Unmarshal(body, &layout); err != nil {
			return stderrors.NewMalformedResponseError("layout body not parseable")
		}
		if layout.StoreServiceableResponse == nil {
			return stderrors.NewMalformedResponseError("no storeServiceableResponse in layout body")
		}
		if layout.StoreServiceableResponse.StoreID == "" {
			return stderrors.NewNotServiceableError("empty store id in serviceability response")
		}

		storeID = layout.StoreServiceableResponse.StoreID
		return nil
	})
	if err != nil {
		c.logger.WithError(err).Error("store resolution exhausted attempts", map[string]interface{}{
			"latitude":  coord.Latitude,
			"longitude": coord.Longitude,
		})
		return "", err
	}

	c.logger.Info("resolved store", map[string]interface{}{"storeId": storeID})
	return storeID, nil
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%v", f)
}
