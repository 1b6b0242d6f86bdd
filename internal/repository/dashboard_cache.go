package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/eaglebank/expense-ledger/shared/models"
	sharedredis "github.com/eaglebank/expense-ledger/shared/redis"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	dashboardAllKey      = "dashboard:summary:all"
	dashboardUserKeyBase = "dashboard:summary:user:"
)

// DashboardCache keeps computed summaries per viewer scope. Mutations
// invalidate the global key and the affected owner's key.
type DashboardCache struct {
	cache *sharedredis.ViewCache[models.DashboardSummary]
}

// NewDashboardCache returns a cache; a nil client yields a cache that never hits.
func NewDashboardCache(client *goredis.Client, ttl time.Duration, log *zap.Logger) *DashboardCache {
	return &DashboardCache{cache: sharedredis.NewViewCache[models.DashboardSummary](client, ttl, log)}
}

func dashboardKey(scope models.Scope) string {
	if scope.IsAll() {
		return dashboardAllKey
	}
	return fmt.Sprintf("%s%d", dashboardUserKeyBase, scope.UserID)
}

// Get reports a miss on a nil cache.
func (c *DashboardCache) Get(ctx context.Context, scope models.Scope) (*models.DashboardSummary, bool) {
	if c == nil {
		return nil, false
	}
	return c.cache.Get(ctx, dashboardKey(scope))
}

func (c *DashboardCache) Set(ctx context.Context, scope models.Scope, summary *models.DashboardSummary) {
	if c == nil {
		return
	}
	c.cache.Set(ctx, dashboardKey(scope), summary)
}

// Invalidate drops the global summary and the summaries of the given owners.
func (c *DashboardCache) Invalidate(ctx context.Context, userIDs ...int64) {
	if c == nil {
		return
	}
	keys := []string{dashboardAllKey}
	for _, id := range userIDs {
		keys = append(keys, dashboardKey(models.OwnedBy(id)))
	}
	c.cache.Delete(ctx, keys...)
}
