// Package dashboard is the read-through cache in front of the role-specific
// dashboard endpoint.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/mayurimulay789/posadmin-client/internal/api"
	"github.com/mayurimulay789/posadmin-client/internal/domain"
	"github.com/mayurimulay789/posadmin-client/internal/metrics"
)

// Cache holds a single slot keyed by role: switching roles discards the
// previous role's payload rather than keeping both.
type Cache struct {
	mu  sync.Mutex
	api *api.DashboardAPI

	data        *domain.DashboardData
	role        domain.Role
	lastFetched time.Time
	ttl         time.Duration

	// now is swappable for staleness tests.
	now func() time.Time
}

func NewCache(a *api.DashboardAPI, ttl time.Duration) *Cache {
	return &Cache{api: a, ttl: ttl, now: time.Now}
}

// Load returns the dashboard for role, fetching only when no data exists,
// the cached role differs, or the slot has gone stale.
func (c *Cache) Load(ctx context.Context, role domain.Role) (*domain.DashboardData, error) {
	c.mu.Lock()
	fresh := c.data != nil && c.role == role && c.now().Sub(c.lastFetched) <= c.ttl
	cached := c.data
	c.mu.Unlock()

	if fresh {
		metrics.CacheHits.WithLabelValues("dashboard").Inc()
		out := *cached
		return &out, nil
	}

	metrics.CacheMisses.WithLabelValues("dashboard").Inc()
	data, err := c.api.ForRole(ctx, role)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.data = data
	c.role = role
	c.lastFetched = c.now()
	c.mu.Unlock()

	out := *data
	return &out, nil
}

// Refresh invalidates the slot and reloads: always exactly one network
// call.
func (c *Cache) Refresh(ctx context.Context, role domain.Role) (*domain.DashboardData, error) {
	c.mu.Lock()
	c.data = nil
	c.lastFetched = time.Time{}
	c.mu.Unlock()
	return c.Load(ctx, role)
}

// Invalidate clears the slot without reloading; the next Load fetches.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.data = nil
	c.lastFetched = time.Time{}
	c.mu.Unlock()
}
