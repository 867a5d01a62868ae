// Package scrape pulls the rendered product title off a PDP page. The
// catalog API is the source of truth for everything else; the rendered
// title is preferred because the API name may be stale or translated.
package scrape

import (
	"context"
	"strings"

	nethttp "net/http"

	"github.com/PuerkitoBio/goquery"

	httpclient "zepto-scraper/internal/common/http"
	"zepto-scraper/internal/common/logger"
)

// titleSelector targets the PDP title span by its structural classes.
const titleSelector = `span.text-sm.font-semibold`

type TitleScraper struct {
	http   *httpclient.Client
	logger logger.Logger
}

func NewTitleScraper(http *httpclient.Client, log logger.Logger) *TitleScraper {
	return &TitleScraper{
		http:   http,
		logger: log.WithFields(map[string]interface{}{"component": "title-scraper"}),
	}
}

// Title fetches the product page and extracts the title element.
// Strictly best-effort: one attempt, and every failure mode returns ""
// rather than an error.
func (s *TitleScraper) Title(ctx context.Context, pdpURL string) string {
	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, pdpURL, nil)
	if err != nil {
		s.logger.WithError(err).Warn("failed to build title request", map[string]interface{}{"url": pdpURL})
		return ""
	}

	resp, err := s.http.Do(req)
	if err != nil {
		s.logger.WithError(err).Warn("title scrape request failed", map[string]interface{}{"url": pdpURL})
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		s.logger.Warn("title scrape returned unexpected status", map[string]interface{}{
			"url":    pdpURL,
			"status": resp.StatusCode,
		})
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		s.logger.WithError(err).Warn("failed to parse product page", map[string]interface{}{"url": pdpURL})
		return ""
	}

	title := strings.TrimSpace(doc.Find(titleSelector).First().Text())
	if title == "" {
		s.logger.Warn("no title element on product page", map[string]interface{}{"url": pdpURL})
		return ""
	}

	s.logger.Info("scraped product title", map[string]interface{}{"url": pdpURL, "title": title})
	return title
}
