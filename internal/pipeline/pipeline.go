// Package pipeline runs one resolution end to end and converts every
// failure mode, panics included, into a tagged outcome. Batch workers
// depend on RunOne never propagating a panic out of a single item.
package pipeline

import (
	"context"
	"fmt"

	"zepto-scraper/internal/common/logger"
	"zepto-scraper/internal/product"
)

type fetcher interface {
	Fetch(ctx context.Context, pdpURL, pincode string) (*product.ProductRecord, error)
}

// Outcome is the terminal state of one item. Record is non-nil exactly
// when the item succeeded; a failed outcome keeps the input pair so the
// caller can report or retry it.
type Outcome struct {
	URL     string
	Pincode string
	Record  *product.ProductRecord
	Err     error
}

func (o Outcome) Success() bool { return o.Record != nil }

type Runner struct {
	fetcher fetcher
	logger  logger.Logger
}

func NewRunner(f fetcher, log logger.Logger) *Runner {
	return &Runner{
		fetcher: f,
		logger:  log.WithFields(map[string]interface{}{"component": "pipeline"}),
	}
}

// RunOne resolves a single (URL, pincode) pair.
func (r *Runner) RunOne(ctx context.Context, pdpURL, pincode string) (out Outcome) {
	out = Outcome{URL: pdpURL, Pincode: pincode}

	defer func() {
		if rec := recover(); rec != nil {
			out.Record = nil
			out.Err = fmt.Errorf("item panicked: %v", rec)
			r.logger.Error("recovered item panic", map[string]interface{}{
				"url":     pdpURL,
				"pincode": pincode,
				"panic":   fmt.Sprintf("%v", rec),
			})
		}
	}()

	record, err := r.fetcher.Fetch(ctx, pdpURL, pincode)
	if err != nil {
		out.Err = err
		return out
	}

	out.Record = record
	return out
}
