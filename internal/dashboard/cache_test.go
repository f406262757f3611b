package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayurimulay789/posadmin-client/internal/api"
	"github.com/mayurimulay789/posadmin-client/internal/domain"
	"github.com/mayurimulay789/posadmin-client/internal/rest"
)

type stubToken struct{}

func (stubToken) Token() string { return "test-token" }

func newTestCache(t *testing.T, ttl time.Duration, fetches *atomic.Int64) *Cache {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/dashboard/{role}", func(w http.ResponseWriter, req *http.Request) {
		fetches.Add(1)
		role := chi.URLParam(req, "role")
		raw, _ := json.Marshal(map[string]any{
			"data": domain.DashboardData{Role: domain.Role(role), TotalRevenue: 9000},
		})
		_, _ = w.Write(raw)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	client := api.NewClient(rest.New(srv.URL, 5*time.Second, stubToken{}, nil))
	return NewCache(client.Dashboard, ttl)
}

func TestLoadFetchesOnceWhileFresh(t *testing.T) {
	var fetches atomic.Int64
	cache := newTestCache(t, 5*time.Minute, &fetches)
	ctx := context.Background()

	data, err := cache.Load(ctx, domain.RoleMerchant)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMerchant, data.Role)
	assert.EqualValues(t, 1, fetches.Load())

	for i := 0; i < 3; i++ {
		_, err = cache.Load(ctx, domain.RoleMerchant)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, fetches.Load(), "fresh slot serves without fetching")
}

func TestLoadFetchesOnRoleChange(t *testing.T) {
	var fetches atomic.Int64
	cache := newTestCache(t, 5*time.Minute, &fetches)
	ctx := context.Background()

	_, err := cache.Load(ctx, domain.RoleMerchant)
	require.NoError(t, err)

	data, err := cache.Load(ctx, domain.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, data.Role)
	assert.EqualValues(t, 2, fetches.Load(), "switching roles discards the slot")

	// Switching back fetches again: the slot holds one role at a time.
	_, err = cache.Load(ctx, domain.RoleMerchant)
	require.NoError(t, err)
	assert.EqualValues(t, 3, fetches.Load())
}

func TestLoadFetchesWhenStale(t *testing.T) {
	var fetches atomic.Int64
	cache := newTestCache(t, 5*time.Minute, &fetches)
	ctx := context.Background()

	current := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	_, err := cache.Load(ctx, domain.RoleMerchant)
	require.NoError(t, err)
	assert.EqualValues(t, 1, fetches.Load())

	current = current.Add(4 * time.Minute)
	_, err = cache.Load(ctx, domain.RoleMerchant)
	require.NoError(t, err)
	assert.EqualValues(t, 1, fetches.Load(), "within the ttl the slot is still fresh")

	current = current.Add(2 * time.Minute)
	_, err = cache.Load(ctx, domain.RoleMerchant)
	require.NoError(t, err)
	assert.EqualValues(t, 2, fetches.Load(), "past the ttl the slot refetches")
}

func TestRefreshAlwaysFetchesExactlyOnce(t *testing.T) {
	var fetches atomic.Int64
	cache := newTestCache(t, 5*time.Minute, &fetches)
	ctx := context.Background()

	_, err := cache.Load(ctx, domain.RoleMerchant)
	require.NoError(t, err)
	assert.EqualValues(t, 1, fetches.Load())

	data, err := cache.Refresh(ctx, domain.RoleMerchant)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMerchant, data.Role)
	assert.EqualValues(t, 2, fetches.Load(), "refresh bypasses the fresh slot with one call")
}

func TestInvalidateForcesNextLoad(t *testing.T) {
	var fetches atomic.Int64
	cache := newTestCache(t, 5*time.Minute, &fetches)
	ctx := context.Background()

	_, err := cache.Load(ctx, domain.RoleMerchant)
	require.NoError(t, err)

	cache.Invalidate()
	_, err = cache.Load(ctx, domain.RoleMerchant)
	require.NoError(t, err)
	assert.EqualValues(t, 2, fetches.Load())
}
