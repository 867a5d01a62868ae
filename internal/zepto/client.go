// Package zepto is the client for the quick-commerce platform's internal
// APIs: place search, store serviceability, delivery estimates, and the
// product catalog. Every call carries a freshly generated client identity;
// retried operations regenerate the identity on each attempt.
package zepto

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	nethttp "net/http"

	"zepto-scraper/internal/common/config"
	httpclient "zepto-scraper/internal/common/http"
	"zepto-scraper/internal/common/logger"
	"zepto-scraper/internal/identity"
)

// Coordinate is a resolved latitude/longitude pair. Lifetime is one
// pipeline run; a store id is only meaningful together with the
// coordinate that produced it.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Client struct {
	cfg    config.ZeptoConfig
	http   *httpclient.Client
	logger logger.Logger

	// sleep and newIdentity are swappable for tests; backoff, courtesy
	// pauses, and identity generation go through them.
	sleep       func(time.Duration)
	newIdentity func() identity.Identity
}

func NewClient(cfg config.ZeptoConfig, http *httpclient.Client, log logger.Logger) *Client {
	return &Client{
		cfg:         cfg,
		http:        http,
		logger:      log.WithFields(map[string]interface{}{"component": "zepto"}),
		sleep:       time.Sleep,
		newIdentity: identity.Fresh,
	}
}

// get issues one GET with the given identity's headers. Hop-by-hop and
// transport-managed headers are left to net/http.
func (c *Client) get(ctx context.Context, base, path string, params url.Values, id identity.Identity, storeID string) (*nethttp.Response, error) {
	endpoint := fmt.Sprintf("%s%s?%s", base, path, params.Encode())

	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	apiHost := hostOf(c.cfg.APIBaseURL)
	for k, v := range id.Headers(c.cfg.AppVersion, apiHost, storeID) {
		switch k {
		case "host", "connection", "accept-encoding":
			continue
		}
		req.Header.Set(k, v)
	}

	return c.http.Do(req)
}

func hostOf(base string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	return u.Host
}

func readBody(resp *nethttp.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
