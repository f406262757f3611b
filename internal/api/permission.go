package api

import (
	"context"

	"github.com/mayurimulay789/posadmin-client/internal/domain"
	"github.com/mayurimulay789/posadmin-client/internal/rest"
)

type PermissionAPI struct {
	res *rest.Resource
}

// ForRole fetches the permission strings granted to a role.
func (a *PermissionAPI) ForRole(ctx context.Context, role domain.Role) ([]string, error) {
	var out struct {
		Permissions []string `json:"permissions"`
	}
	if err := a.res.Get(ctx, "/role/"+string(role), nil, &out); err != nil {
		return nil, err
	}
	return out.Permissions, nil
}
