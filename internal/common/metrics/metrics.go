// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ItemsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_items_completed_total",
			Help: "Total number of batch items resolved successfully",
		},
		[]string{"platform"},
	)

	ItemsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_items_failed_total",
			Help: "Total number of batch items that failed resolution",
		},
		[]string{"platform", "error_code"},
	)

	ItemDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "scraper_item_duration_seconds",
			Help: "Duration of one item's resolution chain in seconds",
		},
		[]string{"platform"},
	)

	ItemsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scraper_items_active",
			Help: "Number of items currently being resolved",
		},
		[]string{"platform"},
	)
)
