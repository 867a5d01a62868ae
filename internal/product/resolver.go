// internal/product/resolver.go
package product

import (
	"context"
	"encoding/json"
	"time"

	"zepto-scraper/internal/common/database"
	"zepto-scraper/internal/common/logger"
	"zepto-scraper/internal/zepto"
)

// StoreResolution ties a serviceable store id to the coordinate that
// produced it. The two are only meaningful as a pair.
type StoreResolution struct {
	Coordinate zepto.Coordinate `json:"coordinate"`
	StoreID    string           `json:"store_id"`
}

// StoreResolver turns a postal code into a serviceable store, caching the
// result in Redis keyed by pincode. A nil cache disables caching; every
// resolution then goes upstream.
type StoreResolver struct {
	zepto         *zepto.Client
	cache         *database.RedisClient
	cacheTTL      time.Duration
	storeAttempts int
	logger        logger.Logger
}

func NewStoreResolver(client *zepto.Client, cache *database.RedisClient, cacheTTL time.Duration, storeAttempts int, log logger.Logger) *StoreResolver {
	return &StoreResolver{
		zepto:         client,
		cache:         cache,
		cacheTTL:      cacheTTL,
		storeAttempts: storeAttempts,
		logger:        log.WithFields(map[string]interface{}{"component": "store_resolver"}),
	}
}

const cacheKeyPrefix = "storeres:"

// Resolve returns the serviceable store for a pincode, from cache when
// possible. Cache read and write failures are logged and ignored; the
// cache never decides an outcome.
func (r *StoreResolver) Resolve(ctx context.Context, pincode string) (*StoreResolution, error) {
	if cached := r.fromCache(ctx, pincode); cached != nil {
		return cached, nil
	}

	coord, err := r.zepto.ResolveCoordinates(ctx, pincode)
	if err != nil {
		return nil, err
	}

	storeID, err := r.zepto.ResolveStore(ctx, *coord, r.storeAttempts)
	if err != nil {
		return nil, err
	}

	res := &StoreResolution{Coordinate: *coord, StoreID: storeID}
	r.toCache(ctx, pincode, res)
	return res, nil
}

func (r *StoreResolver) fromCache(ctx context.Context, pincode string) *StoreResolution {
	if r.cache == nil {
		return nil
	}

	raw, err := r.cache.Get(ctx, cacheKeyPrefix+pincode)
	if err != nil {
		return nil
	}

	var res StoreResolution
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		r.logger.WithError(err).Warn("discarding unreadable cache entry", map[string]interface{}{"pincode": pincode})
		return nil
	}

	r.logger.Debug("store resolution cache hit", map[string]interface{}{"pincode": pincode, "storeId": res.StoreID})
	return &res
}

func (r *StoreResolver) toCache(ctx context.Context, pincode string, res *StoreResolution) {
	if r.cache == nil {
		return
	}

	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, cacheKeyPrefix+pincode, string(raw), r.cacheTTL); err != nil {
		r.logger.WithError(err).Warn("store resolution cache write failed", map[string]interface{}{"pincode": pincode})
	}
}
