package client

import (
	"context"
	"time"

	"github.com/limbo/lumin/pkg/cache"
)

const (
	DefaultDashboardTTL = 5 * time.Minute
	dashboardKey        = "dashboard"
)

// DashboardCache holds the last dashboard payload for a short time.
type DashboardCache struct {
	store *cache.MemoryStore
	ttl   time.Duration
}

// NewDashboardCache uses time.Now when now is nil and DefaultDashboardTTL
// when ttl is not positive.
func NewDashboardCache(now func() time.Time, ttl time.Duration) *DashboardCache {
	if ttl <= 0 {
		ttl = DefaultDashboardTTL
	}
	return &DashboardCache{
		store: cache.NewMemoryStore(now),
		ttl:   ttl,
	}
}

func (dc *DashboardCache) Get(ctx context.Context) ([]byte, bool) {
	data, err := dc.store.Get(ctx, dashboardKey)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (dc *DashboardCache) Set(ctx context.Context, data []byte) {
	dc.store.Set(ctx, dashboardKey, data, dc.ttl)
}

func (dc *DashboardCache) Invalidate(ctx context.Context) {
	dc.store.Delete(ctx, dashboardKey)
}
