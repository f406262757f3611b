package api

import (
	"context"

	"github.com/mayurimulay789/posadmin-client/internal/domain"
	"github.com/mayurimulay789/posadmin-client/internal/rest"
)

type ChargeAPI struct {
	res *rest.Resource
}

type ChargeInput struct {
	ChargeName string                `json:"chargeName"`
	ChargeType domain.ChargeType     `json:"chargeType"`
	Value      float64               `json:"value"`
	Category   domain.ChargeCategory `json:"category"`
}

func (a *ChargeAPI) List(ctx context.Context, f domain.ListFilter) ([]domain.Charge, domain.Pagination, error) {
	var out dataPage[domain.Charge]
	if err := a.res.Get(ctx, "", filterQuery(f), &out); err != nil {
		return nil, domain.Pagination{}, err
	}
	return out.Data, out.page(), nil
}

func (a *ChargeAPI) Create(ctx context.Context, in ChargeInput) (*domain.Charge, error) {
	var out entityResponse[domain.Charge]
	if err := a.res.Post(ctx, "", in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (a *ChargeAPI) Update(ctx context.Context, id string, in ChargeInput) (*domain.Charge, error) {
	var out entityResponse[domain.Charge]
	if err := a.res.Put(ctx, "/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (a *ChargeAPI) Delete(ctx context.Context, id string) error {
	return a.res.Delete(ctx, "/"+id, nil)
}

func (a *ChargeAPI) ToggleActive(ctx context.Context, id string) (*ChargePatch, error) {
	var out entityResponse[ChargePatch]
	if err := a.res.Patch(ctx, "/"+id+"/toggle-status", nil, &out); err != nil {
		return nil, err
	}
	out.Data.ID = id
	return &out.Data, nil
}

// ChargePatch is the partial payload of an active toggle.
type ChargePatch struct {
	ID     string `json:"id"`
	Active *bool  `json:"active,omitempty"`
}
