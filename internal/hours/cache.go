package hours

import (
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"

	"github.com/patrickmn/go-cache"
)

const activeConfigKey = "active_config"

// ConfigCache is the bounded-TTL cache for the single active business-hours
// configuration. Writes that change the active config must call Invalidate
// synchronously; readers may otherwise observe staleness up to the TTL.
type ConfigCache struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewConfigCache(ttl time.Duration) *ConfigCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ConfigCache{
		cache: cache.New(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

func (c *ConfigCache) Get() (*entity.BusinessHoursConfig, bool) {
	if x, found := c.cache.Get(activeConfigKey); found {
		return x.(*entity.BusinessHoursConfig), true
	}
	return nil, false
}

func (c *ConfigCache) Set(cfg *entity.BusinessHoursConfig) {
	c.cache.Set(activeConfigKey, cfg, c.ttl)
}

func (c *ConfigCache) Invalidate() {
	c.cache.Delete(activeConfigKey)
}
