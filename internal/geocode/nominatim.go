// Package geocode resolves a postal code to a human-readable locality via
// Nominatim. Locality is cosmetic metadata: every failure mode degrades to
// a sentinel string and never gates the pipeline.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	nethttp "net/http"

	"zepto-scraper/internal/common/config"
	httpclient "zepto-scraper/internal/common/http"
	"zepto-scraper/internal/common/logger"
)

const (
	SentinelNotFound = "Location not found"
	SentinelNoCity   = "City not found in address data"
)

type Client struct {
	baseURL   string
	userAgent string
	http      *httpclient.Client
	logger    logger.Logger
}

// searchResult is one Nominatim jsonv2 search hit with address details.
type searchResult struct {
	Address map[string]string `json:"address"`
}

func NewClient(cfg config.GeocoderConfig, http *httpclient.Client, log logger.Logger) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		http:      http,
		logger:    log.WithFields(map[string]interface{}{"component": "geocoder"}),
	}
}

// addressPriority is the field-selection order for Indian addresses:
// first non-empty wins.
var addressPriority = []string{
	"city",
	"town",
	"suburb",
	"county",
	"state_district",
	"district",
	"state",
}

// LocalityFor returns the best matching locality name for a postal code.
// At most one request is issued; the collaborator applies its own rate
// limits and this client never retries.
func (c *Client) LocalityFor(ctx context.Context, pincode, country string) string {
	params := url.Values{}
	params.Set("postalcode", pincode)
	params.Set("country", country)
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("limit", "1")

	endpoint := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.WithError(err).Warn("failed to build geocode request", map[string]interface{}{"pincode": pincode})
		return SentinelNotFound
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WithError(err).Warn("geocode request failed", map[string]interface{}{"pincode": pincode})
		return SentinelNotFound
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		c.logger.Warn("geocode returned unexpected status", map[string]interface{}{
			"pincode": pincode,
			"status":  resp.StatusCode,
		})
		return SentinelNotFound
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		c.logger.WithError(err).Warn("failed to decode geocode response", map[string]interface{}{"pincode": pincode})
		return SentinelNotFound
	}

	if len(results) == 0 {
		return SentinelNotFound
	}

	for _, field := range addressPriority {
		if v := results[0].Address[field]; v != "" {
			return v
		}
	}

	return SentinelNoCity
}
