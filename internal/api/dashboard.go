package api

import (
	"context"

	"github.com/mayurimulay789/posadmin-client/internal/domain"
	"github.com/mayurimulay789/posadmin-client/internal/rest"
)

type DashboardAPI struct {
	res *rest.Resource
}

// ForRole fetches the role-specific aggregate payload.
func (a *DashboardAPI) ForRole(ctx context.Context, role domain.Role) (*domain.DashboardData, error) {
	var out entityResponse[domain.DashboardData]
	if err := a.res.Get(ctx, "/"+string(role), nil, &out); err != nil {
		return nil, err
	}
	out.Data.Role = role
	return &out.Data, nil
}
