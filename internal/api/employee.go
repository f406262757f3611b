package api

import (
	"context"

	"github.com/mayurimulay789/posadmin-client/internal/domain"
	"github.com/mayurimulay789/posadmin-client/internal/rest"
)

type EmployeeAPI struct {
	res *rest.Resource
}

type EmployeeInput struct {
	FullName string      `json:"fullName"`
	Email    string      `json:"email"`
	Password string      `json:"password,omitempty"`
	Role     domain.Role `json:"role"`
}

type EmployeeStats struct {
	Total    int            `json:"total"`
	Active   int            `json:"active"`
	Inactive int            `json:"inactive"`
	ByRole   map[string]int `json:"byRole"`
}

func (a *EmployeeAPI) List(ctx context.Context, f domain.ListFilter) ([]domain.Employee, domain.Pagination, error) {
	var out userPage[domain.Employee]
	if err := a.res.Get(ctx, "", filterQuery(f), &out); err != nil {
		return nil, domain.Pagination{}, err
	}
	return out.Users, out.page(), nil
}

func (a *EmployeeAPI) Create(ctx context.Context, in EmployeeInput) (*domain.Employee, error) {
	var out entityResponse[domain.Employee]
	if err := a.res.Post(ctx, "", in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (a *EmployeeAPI) Update(ctx context.Context, id string, in EmployeeInput) (*domain.Employee, error) {
	var out entityResponse[domain.Employee]
	if err := a.res.Put(ctx, "/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (a *EmployeeAPI) Delete(ctx context.Context, id string) error {
	return a.res.Delete(ctx, "/"+id, nil)
}

// ToggleStatus may return a partial payload; callers merge it by id.
func (a *EmployeeAPI) ToggleStatus(ctx context.Context, id string) (*EmployeePatch, error) {
	var out entityResponse[EmployeePatch]
	if err := a.res.Patch(ctx, "/"+id+"/toggle-status", nil, &out); err != nil {
		return nil, err
	}
	out.Data.ID = id
	return &out.Data, nil
}

func (a *EmployeeAPI) Stats(ctx context.Context) (*EmployeeStats, error) {
	var out entityResponse[EmployeeStats]
	if err := a.res.Get(ctx, "/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// EmployeePatch carries the fields a status toggle response includes.
type EmployeePatch struct {
	ID       string `json:"id"`
	IsActive *bool  `json:"isActive,omitempty"`
}
