package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/limbo/lumin/pkg/cache"
)

const DefaultDashboardTTL = 5 * time.Minute

// DashboardCache keeps a rendered dashboard per user. A nil cache is valid and
// never hits.
type DashboardCache struct {
	store cache.Store
	ttl   time.Duration
}

func NewDashboardCache(store cache.Store, ttl time.Duration) *DashboardCache {
	if ttl <= 0 {
		ttl = DefaultDashboardTTL
	}
	return &DashboardCache{
		store: store,
		ttl:   ttl,
	}
}

func dashboardKey(uid uuid.UUID) string {
	return "dashboard:" + uid.String()
}

// Get returns errorvalues.ErrCacheMiss when nothing fresh is stored.
func (dc *DashboardCache) Get(ctx context.Context, uid uuid.UUID) (*Dashboard, error) {
	if dc == nil || dc.store == nil {
		return nil, errCacheDisabled
	}
	data, err := dc.store.Get(ctx, dashboardKey(uid))
	if err != nil {
		return nil, err
	}
	var d Dashboard
	if err = sonic.Unmarshal(data, &d); err != nil {
		return nil, errors.New("decoding cached dashboard error: " + err.Error())
	}
	return &d, nil
}

func (dc *DashboardCache) Set(ctx context.Context, uid uuid.UUID, d *Dashboard) error {
	if dc == nil || dc.store == nil {
		return nil
	}
	data, err := sonic.Marshal(d)
	if err != nil {
		return errors.New("encoding dashboard error: " + err.Error())
	}
	return dc.store.Set(ctx, dashboardKey(uid), data, dc.ttl)
}

func (dc *DashboardCache) Invalidate(ctx context.Context, uid uuid.UUID) error {
	if dc == nil || dc.store == nil {
		return nil
	}
	return dc.store.Delete(ctx, dashboardKey(uid))
}

var errCacheDisabled = errors.New("dashboard cache is disabled")

// drop invalidates and only logs failures. Stale data expires with the TTL.
func (dc *DashboardCache) drop(ctx context.Context, uid uuid.UUID) {
	if err := dc.Invalidate(ctx, uid); err != nil {
		slog.Default().Warn("dashboard cache invalidation failed",
			slog.String("uid", uid.String()),
			slog.String("error", err.Error()))
	}
}
