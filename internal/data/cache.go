package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"time"

	"solar-appraisal/internal/model"
)

// CacheEntry represents a cached API response.
type CacheEntry struct {
	Records   []model.SolarRecord
	ExpiresAt time.Time
}

// ResponseCache provides in-memory caching for PVWatts API responses.
// Production estimates for a fixed parameter set are deterministic, so a
// cache only matters for iterating on other inputs without burning the
// API key's rate limit. Disabled unless ENABLE_PVWATTS_CACHE=true, and
// never enabled when API_ENV=production.
type ResponseCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
}

var globalCache *ResponseCache
var cacheOnce sync.Once

// GetCache returns the global cache instance if caching is enabled.
// Returns nil if caching is disabled.
func GetCache() *ResponseCache {
	if os.Getenv("ENABLE_PVWATTS_CACHE") != "true" {
		return nil
	}
	if os.Getenv("API_ENV") == "production" {
		return nil
	}

	cacheOnce.Do(func() {
		ttl := 24 * time.Hour
		if ttlStr := os.Getenv("PVWATTS_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}

		globalCache = &ResponseCache{
			store: make(map[string]*CacheEntry),
			ttl:   ttl,
		}

		go globalCache.cleanup()
	})

	return globalCache
}

// Get retrieves a cached response if available and not expired.
func (c *ResponseCache) Get(key string) ([]model.SolarRecord, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Records, true
}

// Set stores a response in the cache.
func (c *ResponseCache) Set(key string, records []model.SolarRecord) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		Records:   records,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries from the cache.
func (c *ResponseCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

// cleanup periodically removes expired entries.
func (c *ResponseCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.ExpiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}

// GenerateCacheKey creates a cache key from the request parameters.
func GenerateCacheKey(params SystemParams, year int) string {
	keyStr := fmt.Sprintf("%v:%d:%v:%d:%v:%v:%v:%v:%v:%v:%d",
		params.SystemCapacityKW,
		params.ModuleType,
		params.LossesPercent,
		params.ArrayType,
		params.TiltDegrees,
		params.AzimuthDegrees,
		params.DCACRatio,
		params.GCR,
		params.Latitude,
		params.Longitude,
		year,
	)
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
