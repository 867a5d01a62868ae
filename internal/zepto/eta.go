// internal/zepto/eta.go
package zepto

import (
	"context"
	"encoding/json"
	"net/url"
	"regexp"

	nethttp "net/http"

	stderrors "zepto-scraper/internal/common/errors"
	"zepto-scraper/internal/common/retry"
)

type etaResponse struct {
	SecondaryText string `json:"secondaryText"`
}

// DeliveryEstimate is the raw delivery-time text plus a best-effort
// numeric minute value. The raw text is authoritative; Minutes is derived
// from the first digit run and may be absent.
type DeliveryEstimate struct {
	Raw        string
	Minutes    int
	HasMinutes bool
}

var digitRun = regexp.MustCompile(`\d+`)

// ParseEstimate extracts the leading digit run from free text such as
// "Delivery in 8 mins". The heuristic is locale-bound; text with no
// digits yields HasMinutes=false.
func ParseEstimate(raw string) DeliveryEstimate {
	est := DeliveryEstimate{Raw: raw}
	match := digitRun.FindString(raw)
	if match == "" {
		return est
	}
	minutes := 0
	for _, r := range match {
		minutes = minutes*10 + int(r-'0')
	}
	est.Minutes = minutes
	est.HasMinutes = true
	return est
}

// MinutesText returns the first digit run of the raw text, or "" when the
// text carries no number. This is the value recorded on product records.
func (e DeliveryEstimate) MinutesText() string {
	return digitRun.FindString(e.Raw)
}

// ResolveETA fetches the delivery-estimate text for a store. Same retry
// shape as store resolution against a distinct endpoint; the default
// attempt budget is tuned higher because estimate text is more often
// transiently missing than store serviceability. Empty text is a failure
// outcome subject to retry.
func (c *Client) ResolveETA(ctx context.Context, coord Coordinate, storeID string, maxAttempts int) (string, error) {
	var eta string

	err := retry.Do(retry.Config{
		MaxAttempts: maxAttempts,
		BaseDelay:   c.cfg.BackoffBase(),
		Sleep:       c.sleep,
	}, func(attempt int) error {
		id := c.newIdentity()

		params := url.Values{}
		params.Set("latitude", formatFloat(coord.Latitude))
		params.Set("longitude", formatFloat(coord.Longitude))
		params.Set("store_id", storeID)
		params.Set("version", "v2")
		params.Set("show_new_eta_banner", "true")

		c.logger.Info("resolving eta", map[string]interface{}{
			"attempt": attempt + 1,
			"storeId": storeID,
		})

		resp, err := c.get(ctx, c.cfg.APIBaseURL, "/api/v2/inventory/banner/eta-info", params, id, storeID)
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

		var parsed etaResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return stderrors.NewMalformedResponseError("eta body not parseable")
		}
		if parsed.SecondaryText == "" {
			return stderrors.NewMalformedResponseError("no eta text in response")
		}

		eta = parsed.SecondaryText
		return nil
	})
	if err != nil {
		c.logger.WithError(err).Error("eta resolution exhausted attempts", map[string]interface{}{"storeId": storeID})
		return "", err
	}

	c.logger.Info("resolved eta", map[string]interface{}{"storeId": storeID, "eta": eta})
	return eta, nil
}
