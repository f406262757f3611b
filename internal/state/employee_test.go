package state

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayurimulay789/posadmin-client/internal/api"
	"github.com/mayurimulay789/posadmin-client/internal/domain"
)

func employeePage(items ...domain.Employee) []byte {
	raw, _ := json.Marshal(map[string]any{
		"users": items,
		"pagination": map[string]any{
			"current": 1, "pages": 1, "total": len(items),
		},
	})
	return raw
}

func TestEmployeeLoadReplacesWholesale(t *testing.T) {
	var generation atomic.Int64
	client := newBackendClient(t, func(r chi.Router) {
		r.Get("/employees", func(w http.ResponseWriter, req *http.Request) {
			if generation.Load() == 0 {
				_, _ = w.Write(employeePage(
					domain.Employee{ID: "e1", FullName: "Old One", Role: domain.RoleStaff},
					domain.Employee{ID: "e2", FullName: "Old Two", Role: domain.RoleStaff},
				))
				return
			}
			_, _ = w.Write(employeePage(domain.Employee{ID: "e3", FullName: "New One", Role: domain.RoleManager}))
		})
	})
	store := NewEmployeeStore(client.Employees)
	ctx := context.Background()

	require.NoError(t, store.Load(ctx, domain.ListFilter{}))
	require.Len(t, store.Employees(), 2)

	generation.Store(1)
	require.NoError(t, store.Load(ctx, domain.ListFilter{}))
	got := store.Employees()
	require.Len(t, got, 1, "a reload replaces, never appends")
	assert.Equal(t, "e3", got[0].ID)
}

func TestEmployeeLoadFailureClearsList(t *testing.T) {
	var fail atomic.Bool
	client := newBackendClient(t, func(r chi.Router) {
		r.Get("/employees", func(w http.ResponseWriter, req *http.Request) {
			if fail.Load() {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"message":"employees unavailable"}`))
				return
			}
			_, _ = w.Write(employeePage(domain.Employee{ID: "e1", FullName: "One", Role: domain.RoleStaff}))
		})
	})
	store := NewEmployeeStore(client.Employees)
	ctx := context.Background()

	require.NoError(t, store.Load(ctx, domain.ListFilter{}))
	require.Len(t, store.Employees(), 1)

	fail.Store(true)
	require.Error(t, store.Load(ctx, domain.ListFilter{}))
	assert.Empty(t, store.Employees())
	assert.Equal(t, domain.Pagination{}, store.Page())
	assert.Equal(t, "employees unavailable", store.Status().Error)
}

// A slow response for an earlier fetch must not overwrite the result of a
// later one, whatever order the responses land in.
func TestEmployeeStaleResponseDiscarded(t *testing.T) {
	slowEntered := make(chan struct{})
	slowRelease := make(chan struct{})

	client := newBackendClient(t, func(r chi.Router) {
		r.Get("/employees", func(w http.ResponseWriter, req *http.Request) {
			if req.URL.Query().Get("page") == "1" {
				close(slowEntered)
				<-slowRelease
				_, _ = w.Write(employeePage(domain.Employee{ID: "stale", FullName: "Stale", Role: domain.RoleStaff}))
				return
			}
			_, _ = w.Write(employeePage(domain.Employee{ID: "fresh", FullName: "Fresh", Role: domain.RoleStaff}))
		})
	})
	store := NewEmployeeStore(client.Employees)
	ctx := context.Background()

	slowDone := make(chan error, 1)
	go func() {
		slowDone <- store.Load(ctx, domain.ListFilter{Page: 1})
	}()
	<-slowEntered

	require.NoError(t, store.Load(ctx, domain.ListFilter{Page: 2}))

	close(slowRelease)
	require.NoError(t, <-slowDone)

	got := store.Employees()
	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].ID, "the most recently issued fetch wins")
}

func TestEmployeeToggleStatusMergesPatch(t *testing.T) {
	client := newBackendClient(t, func(r chi.Router) {
		r.Get("/employees", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write(employeePage(domain.Employee{ID: "e1", FullName: "One", Email: "one@example.com", Role: domain.RoleStaff, IsActive: true}))
		})
		r.Patch("/employees/e1/toggle-status", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(`{"message":"ok","data":{"isActive":false}}`))
		})
	})
	store := NewEmployeeStore(client.Employees)
	ctx := context.Background()

	require.NoError(t, store.Load(ctx, domain.ListFilter{}))
	require.NoError(t, store.ToggleStatus(ctx, "e1"))

	got := store.Employees()
	require.Len(t, got, 1)
	assert.False(t, got[0].IsActive)
	assert.Equal(t, "one@example.com", got[0].Email, "fields outside the patch survive")
}

func TestEmployeeCreateValidation(t *testing.T) {
	var hits atomic.Int64
	client := newBackendClient(t, func(r chi.Router) {
		r.Post("/employees", func(w http.ResponseWriter, req *http.Request) {
			hits.Add(1)
			_, _ = w.Write([]byte(`{"data":{}}`))
		})
	})
	store := NewEmployeeStore(client.Employees)
	ctx := context.Background()

	for _, in := range []api.EmployeeInput{
		{Email: "one@example.com", Role: domain.RoleStaff},
		{FullName: "One", Role: domain.RoleStaff},
		{FullName: "One", Email: "one@example.com", Role: "janitor"},
	} {
		assert.Error(t, store.Create(ctx, in))
	}
	assert.EqualValues(t, 0, hits.Load())
}
