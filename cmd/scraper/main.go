// cmd/scraper/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"zepto-scraper/internal/batch"
	"zepto-scraper/internal/common/aws"
	"zepto-scraper/internal/common/config"
	"zepto-scraper/internal/common/database"
	httpclient "zepto-scraper/internal/common/http"
	"zepto-scraper/internal/common/logger"
	"zepto-scraper/internal/common/observability"
	"zepto-scraper/internal/geocode"
	"zepto-scraper/internal/pipeline"
	"zepto-scraper/internal/product"
	"zepto-scraper/internal/scrape"
	"zepto-scraper/internal/sink"
	"zepto-scraper/internal/zepto"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	inputPath := flag.String("input", "products.json", "path to the batch input file (JSON array of {url, pincode})")
	flag.Parse()

	bootLog := logger.New("info", "console")
	bootLog.Info("Starting scraper...")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	// Rebuild the logger with the configured level and format.
	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	items, err := loadItems(*inputPath)
	if err != nil {
		zapLog.Fatal("input load failed", zap.String("path", *inputPath), zap.Error(err))
	}
	zapLog.Info("Input loaded", zap.Int("items", len(items)), zap.String("path", *inputPath))

	// --- Init outbound HTTP client (optionally proxied) ---
	upstream, err := httpclient.NewClientWithProxy(cfg.Zepto.CallTimeout(), cfg.Proxy)
	if err != nil {
		zapLog.Fatal("http client init failed", zap.Error(err))
	}

	// --- Init record sinks ---
	var sinks []sink.Sink

	if cfg.Database.Postgres.Enabled {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")

		sinks = append(sinks, sink.NewPostgresSink(pg, log))
	}

	if cfg.Database.Elasticsearch.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")

		sinks = append(sinks, sink.NewElasticsearchSink(esClient, cfg.Database.Elasticsearch.Index, log))
	}

	var out sink.Sink
	if len(sinks) > 0 {
		out = sink.NewMulti(sinks...)
	} else {
		zapLog.Warn("No sinks enabled, records will only be logged")
	}

	// --- Init resolution cache ---
	var cache *database.RedisClient
	if cfg.Cache.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			cache, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return cache.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer cache.Close()
		zapLog.Info("Redis connected successfully")
	}

	// --- Assemble the resolution chain ---
	zeptoClient := zepto.NewClient(cfg.Zepto, upstream, log)
	geocoder := geocode.NewClient(cfg.Geocoder, upstream, log)
	titles := scrape.NewTitleScraper(upstream, log)

	stores := product.NewStoreResolver(
		zeptoClient, cache,
		time.Duration(cfg.Cache.TTL)*time.Second,
		cfg.Zepto.StoreAttempts, log,
	)

	fetcher := product.NewFetcher(product.Config{
		Platform:    cfg.App.Platform,
		BrandTag:    cfg.App.BrandTag,
		Country:     cfg.Geocoder.Country,
		PDPBaseURL:  cfg.Zepto.PDPBaseURL,
		ETAAttempts: cfg.Zepto.ETAAttempts,
	}, stores, zeptoClient, geocoder, titles, log)

	runner := batch.NewRunner(
		cfg.Batch, cfg.App.Platform,
		pipeline.NewRunner(fetcher, log),
		out, obs, log,
	)

	// --- Health & Metrics Server ---
	if cfg.Metrics.Enabled {
		go func() {
			http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
			})
			http.Handle("/metrics", promhttp.Handler())
			zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				zapLog.Error("Health/Metrics server failed", zap.Error(err))
			}
		}()
	}

	// --- Run the batch, cancellable by signal ---
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		zapLog.Warn("Shutdown signal received, cancelling batch", zap.String("signal", sig.String()))
		cancel()
	}()

	result := runner.Run(runCtx, items)

	zapLog.Info("Batch finished",
		zap.Int("total", result.Total),
		zap.Int("success", result.Success),
		zap.Int("failed", result.Failed),
		zap.Duration("elapsed", result.Elapsed),
	)

	if cfg.Notifications.SNS.Enabled {
		publishSummary(ctx, cfg, result, zapLog)
	}

	if result.Failed > 0 {
		for _, item := range result.FailedItems {
			zapLog.Warn("unresolved item", zap.String("url", item.URL), zap.String("pincode", item.Pincode))
		}
		os.Exit(1)
	}
}

// loadItems reads the batch input: a JSON array of {url, pincode} objects.
func loadItems(path string) ([]batch.Item, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []batch.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("input file is not a JSON item array: %w", err)
	}
	return items, nil
}

func publishSummary(ctx context.Context, cfg *config.Config, result batch.Result, zapLog *zap.Logger) {
	snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.SNS.Region)
	if err != nil {
		zapLog.Error("SNS client init failed, skipping summary", zap.Error(err))
		return
	}

	message := fmt.Sprintf(
		"Scrape run %s complete: %d total, %d succeeded, %d failed (%s)",
		time.Now().Format("2006-01-02"),
		result.Total, result.Success, result.Failed, result.Elapsed.Round(time.Second),
	)
	subject := fmt.Sprintf("[%s] batch summary", cfg.App.Name)

	_, err = snsClient.Publish(ctx, &awssns.PublishInput{
		TopicArn: &cfg.Notifications.SNS.TopicARN,
		Message:  &message,
		Subject:  &subject,
	})
	if err != nil {
		zapLog.Error("SNS publish failed", zap.Error(err))
		return
	}
	zapLog.Info("Batch summary published", zap.String("topic", cfg.Notifications.SNS.TopicARN))
}
