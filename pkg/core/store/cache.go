package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/models"
)

// CacheRepository is the minimal cache surface the appraisal handlers
// need. Implementations must be safe for concurrent use.
type CacheRepository interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// MemoryCache is the in-process implementation, used when no Redis
// address is configured and as the test double.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: map[string]string{}}
}

func (c *MemoryCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.items[key]
	return val, ok
}

func (c *MemoryCache) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

// AppraisalCacheKey fingerprints a project snapshot plus the variation
// percentage, so identical inputs land on the same cache entry. The
// pipeline is deterministic, which is what makes caching by input hash
// sound.
func AppraisalCacheKey(data models.ProjectData, variationPercent float64) string {
	payload, err := json.Marshal(struct {
		Project   models.ProjectData `json:"project"`
		Variation float64            `json:"variation"`
	}{data, variationPercent})
	if err != nil {
		payload = []byte(fmt.Sprintf("%+v|%v", data, variationPercent))
	}

	sum := sha256.Sum256(payload)
	return "appraisal:" + hex.EncodeToString(sum[:])
}
