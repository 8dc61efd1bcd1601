package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/emotionai/emotion-api/internal/core/domain"
)

const DefaultReportTTL = 30 * time.Second

// ReportCache keeps computed reports in process memory keyed by username.
type ReportCache struct {
	store *gocache.Cache
}

func NewReportCache(ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = DefaultReportTTL
	}
	return &ReportCache{store: gocache.New(ttl, ttl*2)}
}

func (c *ReportCache) Get(username string) (*domain.Report, bool) {
	v, ok := c.store.Get(username)
	if !ok {
		return nil, false
	}
	r, ok := v.(*domain.Report)
	return r, ok
}

func (c *ReportCache) Set(username string, r *domain.Report) {
	c.store.SetDefault(username, r)
}

func (c *ReportCache) Invalidate(username string) {
	c.store.Delete(username)
}
