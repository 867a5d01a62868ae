// internal/product/resolver_test.go
package product

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"zepto-scraper/internal/common/config"
	"zepto-scraper/internal/common/database"
	httpclient "zepto-scraper/internal/common/http"
	"zepto-scraper/internal/common/logger"
	"zepto-scraper/internal/zepto"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resolverHarness struct {
	resolver         *StoreResolver
	mini             *miniredis.Miniredis
	calls            map[string]int
	failAutocomplete bool
}

func newResolverHarness(t *testing.T) *resolverHarness {
	h := &resolverHarness{calls: map[string]int{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/maps/place/autocomplete/", func(w http.ResponseWriter, r *http.Request) {
		h.calls["autocomplete"]++
		if h.failAutocomplete {
			w.Write([]byte(`{"predictions":[]}`))
			return
		}
		w.Write([]byte(`{"predictions":[{"place_id":"place-1"}]}`))
	})
	mux.HandleFunc("/api/v1/maps/place/details/", func(w http.ResponseWriter, r *http.Request) {
		h.calls["details"]++
		w.Write([]byte(`{"result":{"geometry":{"location":{"lat":19.07,"lng":72.87}}}}`))
	})
	mux.HandleFunc("/api/v1/config/layout/", func(w http.ResponseWriter, r *http.Request) {
		h.calls["layout"]++
		w.Write([]byte(`{"storeServiceableResponse":{"storeId":"store-7"}}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	cfg := config.ZeptoConfig{
		APIBaseURL:  server.URL,
		MapsBaseURL: server.URL,
		AppVersion:  "24.7.1",
		Timeout:     5000,
		RetryDelay:  1,
	}
	client := zepto.NewClient(cfg, httpclient.NewClient(5*time.Second), logger.NewTestLogger(t))

	h.mini = miniredis.RunT(t)
	cache := &database.RedisClient{Client: goredis.NewClient(&goredis.Options{Addr: h.mini.Addr()})}

	h.resolver = NewStoreResolver(client, cache, 30*time.Minute, 3, logger.NewTestLogger(t))
	return h
}

func TestStoreResolverResolvesAndCaches(t *testing.T) {
	h := newResolverHarness(t)

	res, err := h.resolver.Resolve(context.Background(), "400001")
	require.NoError(t, err)
	assert.Equal(t, "store-7", res.StoreID)
	assert.Equal(t, 19.07, res.Coordinate.Latitude)
	assert.Equal(t, 72.87, res.Coordinate.Longitude)

	// second resolution comes from the cache, not upstream
	again, err := h.resolver.Resolve(context.Background(), "400001")
	require.NoError(t, err)
	assert.Equal(t, res, again)
	assert.Equal(t, 1, h.calls["autocomplete"])
	assert.Equal(t, 1, h.calls["layout"])

	// distinct pincodes are distinct entries
	_, err = h.resolver.Resolve(context.Background(), "411001")
	require.NoError(t, err)
	assert.Equal(t, 2, h.calls["layout"])
}

func TestStoreResolverExpiredEntryGoesUpstream(t *testing.T) {
	h := newResolverHarness(t)

	_, err := h.resolver.Resolve(context.Background(), "400001")
	require.NoError(t, err)

	h.mini.FastForward(time.Hour)

	_, err = h.resolver.Resolve(context.Background(), "400001")
	require.NoError(t, err)
	assert.Equal(t, 2, h.calls["layout"])
}

func TestStoreResolverCorruptEntryIgnored(t *testing.T) {
	h := newResolverHarness(t)
	require.NoError(t, h.mini.Set(cacheKeyPrefix+"400001", "not json"))

	res, err := h.resolver.Resolve(context.Background(), "400001")
	require.NoError(t, err)
	assert.Equal(t, "store-7", res.StoreID)
	assert.Equal(t, 1, h.calls["layout"])
}

func TestStoreResolverCoordinateFailureStopsChain(t *testing.T) {
	h := newResolverHarness(t)
	h.failAutocomplete = true

	res, err := h.resolver.Resolve(context.Background(), "400001")
	assert.Nil(t, res)
	assert.Error(t, err)

	assert.Zero(t, h.calls["layout"], "store lookup never runs without coordinates")
	assert.Empty(t, h.mini.Keys(), "failures are not cached")
}

func TestStoreResolverNilCache(t *testing.T) {
	h := newResolverHarness(t)
	h.resolver.cache = nil

	_, err := h.resolver.Resolve(context.Background(), "400001")
	require.NoError(t, err)
	_, err = h.resolver.Resolve(context.Background(), "400001")
	require.NoError(t, err)

	assert.Equal(t, 2, h.calls["layout"], "every resolution goes upstream without a cache")
}
