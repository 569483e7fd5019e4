package repositories

import (
	"encoding/json"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/karlseguin/ccache/v3"
	"github.com/rs/zerolog"

	"roomrental/properties-api/domain"
)

// CacheRepository is a two level cache for search results: a small
// in-process ccache in front of a shared Memcached.
type CacheRepository interface {
	Get(key string) ([]domain.Property, int, bool)
	Set(key string, properties []domain.Property, total int)
	// Flush drops both levels. Called when the index changes so stale
	// result pages are never served.
	Flush()
}

type cachedResult struct {
	Properties []domain.Property `json:"properties"`
	Total      int               `json:"total"`
}

const (
	localTTL     = 5 * time.Minute
	memcachedTTL = int32(15 * 60)
)

type cacheRepository struct {
	local     *ccache.Cache[*cachedResult]
	memcached *memcache.Client
	logger    zerolog.Logger
}

// NewCacheRepository wires the two cache levels.
func NewCacheRepository(memcachedHost string, logger zerolog.Logger) CacheRepository {
	return &cacheRepository{
		local:     ccache.New(ccache.Configure[*cachedResult]().MaxSize(1000)),
		memcached: memcache.New(memcachedHost),
		logger:    logger,
	}
}

func (r *cacheRepository) Get(key string) ([]domain.Property, int, bool) {
	if item := r.local.Get(key); item != nil && !item.Expired() {
		result := item.Value()
		r.logger.Debug().Str("key", key).Msg("cache hit (local)")
		return result.Properties, result.Total, true
	}

	item, err := r.memcached.Get(key)
	if err != nil {
		if err != memcache.ErrCacheMiss {
			r.logger.Warn().Err(err).Str("key", key).Msg("memcached get failed")
		}
		return nil, 0, false
	}

	var result cachedResult
	if err := json.Unmarshal(item.Value, &result); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("failed to decode cached result")
		return nil, 0, false
	}

	// Promote to the local level for subsequent lookups.
	r.local.Set(key, &result, localTTL)
	r.logger.Debug().Str("key", key).Msg("cache hit (memcached)")
	return result.Properties, result.Total, true
}

func (r *cacheRepository) Set(key string, properties []domain.Property, total int) {
	result := &cachedResult{Properties: properties, Total: total}
	r.local.Set(key, result, localTTL)

	payload, err := json.Marshal(result)
	if err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("failed to encode result for memcached")
		return
	}

	if err := r.memcached.Set(&memcache.Item{Key: key, Value: payload, Expiration: memcachedTTL}); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("memcached set failed")
	}
}

func (r *cacheRepository) Flush() {
	r.local.Clear()
	if err := r.memcached.FlushAll(); err != nil {
		r.logger.Warn().Err(err).Msg("memcached flush failed")
	}
	r.logger.Debug().Msg("search cache flushed")
}
