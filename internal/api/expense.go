package api

import (
	"context"

	"github.com/mayurimulay789/posadmin-client/internal/domain"
	"github.com/mayurimulay789/posadmin-client/internal/rest"
)

type ExpenseAPI struct {
	res *rest.Resource
}

type ExpenseInput struct {
	Title         string  `json:"title"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description,omitempty"`
	PaymentMethod string  `json:"paymentMethod"`
	Date          string  `json:"date,omitempty"`
}

type ExpenseStats struct {
	Total     float64            `json:"total"`
	ThisMonth float64            `json:"thisMonth"`
	Today     float64            `json:"today"`
	ByMethod  map[string]float64 `json:"byMethod"`
}

func (a *ExpenseAPI) List(ctx context.Context, f domain.ListFilter) ([]domain.Expense, domain.Pagination, error) {
	var out dataPage[domain.Expense]
	if err := a.res.Get(ctx, "", filterQuery(f), &out); err != nil {
		return nil, domain.Pagination{}, err
	}
	return out.Data, out.page(), nil
}

func (a *ExpenseAPI) Mine(ctx context.Context, f domain.ListFilter) ([]domain.Expense, domain.Pagination, error) {
	var out dataPage[domain.Expense]
	if err := a.res.Get(ctx, "/my-expenses", filterQuery(f), &out); err != nil {
		return nil, domain.Pagination{}, err
	}
	return out.Data, out.page(), nil
}

func (a *ExpenseAPI) Create(ctx context.Context, in ExpenseInput) (*domain.Expense, error) {
	var out entityResponse[domain.Expense]
	if err := a.res.Post(ctx, "", in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (a *ExpenseAPI) Update(ctx context.Context, id string, in ExpenseInput) (*domain.Expense, error) {
	var out entityResponse[domain.Expense]
	if err := a.res.Put(ctx, "/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (a *ExpenseAPI) Delete(ctx context.Context, id string) error {
	return a.res.Delete(ctx, "/"+id, nil)
}

func (a *ExpenseAPI) Stats(ctx context.Context) (*ExpenseStats, error) {
	var out entityResponse[ExpenseStats]
	if err := a.res.Get(ctx, "/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
