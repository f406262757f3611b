package state

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mayurimulay789/posadmin-client/internal/api"
	"github.com/mayurimulay789/posadmin-client/internal/domain"
	"github.com/mayurimulay789/posadmin-client/internal/rest"
)

type stubUsers struct {
	u *domain.UserRef
}

func (s stubUsers) User() *domain.UserRef { return s.u }

type stubToken struct{}

func (stubToken) Token() string { return "test-token" }

// newBackendClient spins a fake backend and an API client over it.
func newBackendClient(t *testing.T, routes func(chi.Router)) *api.Client {
	t.Helper()
	r := chi.NewRouter()
	routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return api.NewClient(rest.New(srv.URL, 5*time.Second, stubToken{}, nil))
}

func merchantUser() *domain.UserRef {
	return &domain.UserRef{ID: "m1", FullName: "Mera", Role: domain.RoleMerchant}
}

func staffUser(id string) *domain.UserRef {
	return &domain.UserRef{ID: id, FullName: "Staff " + id, Role: domain.RoleStaff}
}
