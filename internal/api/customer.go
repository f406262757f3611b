package api

import (
	"context"
	"net/url"

	"github.com/mayurimulay789/posadmin-client/internal/domain"
	"github.com/mayurimulay789/posadmin-client/internal/rest"
)

type CustomerAPI struct {
	res *rest.Resource
}

type CustomerInput struct {
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	MembershipID string `json:"membershipId,omitempty"`
}

func (a *CustomerAPI) List(ctx context.Context, f domain.ListFilter) ([]domain.Customer, domain.Pagination, error) {
	return a.list(ctx, "", filterQuery(f))
}

// Mine lists customers created by the current user.
func (a *CustomerAPI) Mine(ctx context.Context, f domain.ListFilter) ([]domain.Customer, domain.Pagination, error) {
	return a.list(ctx, "/my-customers", filterQuery(f))
}

// ByMembership lists customers holding the given membership.
func (a *CustomerAPI) ByMembership(ctx context.Context, membershipID string, f domain.ListFilter) ([]domain.Customer, domain.Pagination, error) {
	return a.list(ctx, "/membership/"+membershipID, filterQuery(f))
}

// Search runs the free-text customer search endpoint.
func (a *CustomerAPI) Search(ctx context.Context, term string, f domain.ListFilter) ([]domain.Customer, domain.Pagination, error) {
	q := filterQuery(f)
	q.Set("search", term)
	return a.list(ctx, "/search", q)
}

func (a *CustomerAPI) list(ctx context.Context, path string, q url.Values) ([]domain.Customer, domain.Pagination, error) {
	var out dataPage[domain.Customer]
	if err := a.res.Get(ctx, path, q, &out); err != nil {
		return nil, domain.Pagination{}, err
	}
	return out.Data, out.page(), nil
}

func (a *CustomerAPI) Create(ctx context.Context, in CustomerInput) (*domain.Customer, error) {
	var out entityResponse[domain.Customer]
	if err := a.res.Post(ctx, "", in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (a *CustomerAPI) Update(ctx context.Context, id string, in CustomerInput) (*domain.Customer, error) {
	var out entityResponse[domain.Customer]
	if err := a.res.Put(ctx, "/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (a *CustomerAPI) Delete(ctx context.Context, id string) error {
	return a.res.Delete(ctx, "/"+id, nil)
}

func (a *CustomerAPI) ToggleStatus(ctx context.Context, id string) (*CustomerPatch, error) {
	var out entityResponse[CustomerPatch]
	if err := a.res.Patch(ctx, "/"+id+"/toggle-status", nil, &out); err != nil {
		return nil, err
	}
	out.Data.ID = id
	return &out.Data, nil
}

// CustomerPatch is the partial payload of a status toggle.
type CustomerPatch struct {
	ID       string `json:"id"`
	IsActive *bool  `json:"isActive,omitempty"`
}
