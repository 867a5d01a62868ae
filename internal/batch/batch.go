// Package batch fans a list of (URL, pincode) items out over a bounded
// worker pool. Items are validated up front, processed in chunks, and
// retried whole when they fail; the run itself never aborts because of a
// bad item.
package batch

import (
	"context"
	goerrors "errors"
	"sync"
	"time"

	"zepto-scraper/internal/common/config"
	stderrors "zepto-scraper/internal/common/errors"
	"zepto-scraper/internal/common/logger"
	"zepto-scraper/internal/common/metrics"
	"zepto-scraper/internal/common/observability"
	"zepto-scraper/internal/common/validation"
	"zepto-scraper/internal/pipeline"
	"zepto-scraper/internal/sink"
)

// Item is one batch input pair.
type Item struct {
	URL     string `json:"url"`
	Pincode string `json:"pincode"`
}

// Result summarizes a completed run. Success+Failed always equals Total.
type Result struct {
	Total       int
	Success     int
	Failed      int
	FailedItems []Item
	Elapsed     time.Duration
}

type itemRunner interface {
	RunOne(ctx context.Context, pdpURL, pincode string) pipeline.Outcome
}

type Runner struct {
	cfg      config.BatchConfig
	platform string
	runner   itemRunner
	sink     sink.Sink // nil disables persistence
	obs      *observability.Observability
	logger   logger.Logger

	// sleep is swappable for tests; the pause between item attempts goes
	// through it.
	sleep func(time.Duration)
}

func NewRunner(cfg config.BatchConfig, platform string, runner itemRunner, out sink.Sink, obs *observability.Observability, log logger.Logger) *Runner {
	return &Runner{
		cfg:      cfg,
		platform: platform,
		runner:   runner,
		sink:     out,
		obs:      obs,
		logger:   log.WithFields(map[string]interface{}{"component": "batch"}),
		sleep:    time.Sleep,
	}
}

// Run processes every item and reports the aggregate. An empty input
// returns a zero result without touching the network.
func (r *Runner) Run(ctx context.Context, items []Item) Result {
	start := time.Now()
	result := Result{Total: len(items)}
	if len(items) == 0 {
		r.logger.Warn("nothing to process", nil)
		return result
	}

	valid := make([]Item, 0, len(items))
	for _, item := range items {
		if err := validation.ValidateItem(map[string]interface{}{
			"url":     item.URL,
			"pincode": item.Pincode,
		}); err != nil {
			r.logger.WithError(err).Warn("rejecting invalid item", map[string]interface{}{
				"url":     item.URL,
				"pincode": item.Pincode,
			})
			result.Failed++
			result.FailedItems = append(result.FailedItems, item)
			metrics.ItemsFailed.WithLabelValues(r.platform, string(stderrors.ErrCodeInvalidInput)).Inc()
			continue
		}
		valid = append(valid, item)
	}

	chunkSize := r.cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = len(valid)
	}

	for offset := 0; offset < len(valid); offset += chunkSize {
		end := offset + chunkSize
		if end > len(valid) {
			end = len(valid)
		}
		chunk := valid[offset:end]

		r.logger.Info("processing chunk", map[string]interface{}{
			"from": offset,
			"to":   end,
			"of":   len(valid),
		})

		succeeded := r.runChunk(ctx, chunk)
		for i, item := range chunk {
			if succeeded[i] {
				result.Success++
			} else {
				result.Failed++
				result.FailedItems = append(result.FailedItems, item)
			}
		}
	}

	result.Elapsed = time.Since(start)
	r.logger.Info("batch complete", map[string]interface{}{
		"total":   result.Total,
		"success": result.Success,
		"failed":  result.Failed,
		"elapsed": result.Elapsed.String(),
	})
	return result
}

// runChunk processes one chunk over the worker pool and reports per-item
// success, positionally aligned with the chunk.
func (r *Runner) runChunk(ctx context.Context, chunk []Item) []bool {
	succeeded := make([]bool, len(chunk))

	workers := r.cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(chunk) {
		workers = len(chunk)
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indices {
				succeeded[i] = r.processItem(ctx, chunk[i])
			}
		}()
	}

	for i := range chunk {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return succeeded
}

// processItem runs one item through the pipeline, retrying the whole item
// on failure with a fixed pause between attempts. A successful resolution
// whose sink write fails counts as a failed attempt.
func (r *Runner) processItem(ctx context.Context, item Item) bool {
	attempts := r.cfg.TaskRetries
	if attempts <= 0 {
		attempts = 1
	}
	delay := time.Duration(r.cfg.TaskRetryDelay) * time.Second

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			r.sleep(delay)
		}
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}

		err := r.runOnce(ctx, item)
		if err == nil {
			metrics.ItemsCompleted.WithLabelValues(r.platform).Inc()
			return true
		}
		lastErr = err

		if !stderrors.IsRetryable(err) {
			r.logger.WithError(err).Warn("item failed terminally", map[string]interface{}{"url": item.URL})
			break
		}
		r.logger.WithError(err).Warn("item attempt failed", map[string]interface{}{
			"url":     item.URL,
			"attempt": attempt + 1,
		})
	}

	metrics.ItemsFailed.WithLabelValues(r.platform, errorCode(lastErr)).Inc()
	return false
}

func (r *Runner) runOnce(ctx context.Context, item Item) error {
	metrics.ItemsActive.WithLabelValues(r.platform).Inc()
	defer metrics.ItemsActive.WithLabelValues(r.platform).Dec()

	start := time.Now()
	out := r.runner.RunOne(ctx, item.URL, item.Pincode)
	metrics.ItemDuration.WithLabelValues(r.platform).Observe(time.Since(start).Seconds())

	status := "success"
	defer func() {
		if r.obs != nil {
			r.obs.RecordItemProcessed(ctx, status)
			r.obs.RecordItemDuration(ctx, time.Since(start), status)
		}
	}()

	if !out.Success() {
		status = "failed"
		return out.Err
	}

	if r.sink != nil {
		if err := r.sink.Write(ctx, out.Record); err != nil {
			status = "failed"
			return err
		}
	}
	return nil
}

func errorCode(err error) string {
	var stdErr *stderrors.StandardError
	if goerrors.As(err, &stdErr) {
		return string(stdErr.Code)
	}
	return "UNKNOWN"
}
