// Package sink persists resolved product records. Sinks are fan-out
// targets: a batch run writes every successful record to each configured
// sink, and a sink failure fails the item, not the run.
package sink

import (
	"context"

	"zepto-scraper/internal/product"
)

type Sink interface {
	// Write persists one record.
	Write(ctx context.Context, rec *product.ProductRecord) error
	// Name identifies the sink in logs and error metadata.
	Name() string
}

// Multi writes to every sink in order and stops at the first failure.
type Multi struct {
	sinks []Sink
}

func NewMulti(sinks ...Sink) *Multi {
	return &Multi{sinks: sinks}
}

func (m *Multi) Name() string { return "multi" }

func (m *Multi) Write(ctx context.Context, rec *product.ProductRecord) error {
	for _, s := range m.sinks {
		if err := s.Write(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
