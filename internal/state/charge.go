package state

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/mayurimulay789/posadmin-client/internal/api"
	"github.com/mayurimulay789/posadmin-client/internal/authz"
	"github.com/mayurimulay789/posadmin-client/internal/domain"
	"github.com/mayurimulay789/posadmin-client/internal/metrics"
)

var ErrChargeForbidden = errors.New("only merchants and managers manage charges")

// ChargeStore caches the charge list. Mutations are gated to merchant and
// manager roles before dispatch; the gate is advisory and a server 403
// still lands in the error field like any other failure.
type ChargeStore struct {
	mu    sync.Mutex
	api   *api.ChargeAPI
	users UserProvider
	guard *fetchGuard

	charges []domain.Charge
	page    domain.Pagination
	status  Status
}

func NewChargeStore(a *api.ChargeAPI, users UserProvider) *ChargeStore {
	return &ChargeStore{api: a, users: users, guard: newFetchGuard()}
}

func (s *ChargeStore) Charges() []domain.Charge {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Charge, len(s.charges))
	copy(out, s.charges)
	return out
}

func (s *ChargeStore) Page() domain.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

func (s *ChargeStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *ChargeStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Error = ""
}

func (s *ChargeStore) ClearSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Success = ""
}

func (s *ChargeStore) Load(ctx context.Context, f domain.ListFilter) error {
	ticket := s.guard.begin("list")
	s.mu.Lock()
	s.status.setLoading()
	s.mu.Unlock()

	items, page, err := s.api.List(ctx, f)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.guard.current("list", ticket) {
		metrics.StaleFetches.WithLabelValues("charge").Inc()
		return nil
	}
	if err != nil {
		s.charges = nil
		s.page = domain.Pagination{}
		s.status.setError(err.Error())
		return err
	}
	s.charges = items
	s.page = page
	s.status.settle()
	return nil
}

func (s *ChargeStore) Create(ctx context.Context, in api.ChargeInput) error {
	if !authz.CanManageCharges(s.users.User()) {
		return ErrChargeForbidden
	}
	if err := validateChargeInput(in); err != nil {
		return err
	}

	created, err := s.api.Create(ctx, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.setError(err.Error())
		return err
	}
	s.charges = append([]domain.Charge{*created}, s.charges...)
	s.status.setSuccess("charge created")
	return nil
}

func (s *ChargeStore) Update(ctx context.Context, id string, in api.ChargeInput) error {
	if !authz.CanManageCharges(s.users.User()) {
		return ErrChargeForbidden
	}

	updated, err := s.api.Update(ctx, id, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.setError(err.Error())
		return err
	}
	replaceByID(s.charges, id, chargeID, *updated)
	s.status.setSuccess("charge updated")
	return nil
}

func (s *ChargeStore) Delete(ctx context.Context, id string) error {
	if !authz.CanManageCharges(s.users.User()) {
		return ErrChargeForbidden
	}

	err := s.api.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.setError(err.Error())
		return err
	}
	s.charges = removeByID(s.charges, id, chargeID)
	s.status.setSuccess("charge deleted")
	return nil
}

func (s *ChargeStore) ToggleActive(ctx context.Context, id string) error {
	if !authz.CanManageCharges(s.users.User()) {
		return ErrChargeForbidden
	}

	patch, err := s.api.ToggleActive(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.setError(err.Error())
		return err
	}
	for i := range s.charges {
		if s.charges[i].ID == id && patch.Active != nil {
			s.charges[i].Active = *patch.Active
		}
	}
	s.status.setSuccess("charge status updated")
	return nil
}

func validateChargeInput(in api.ChargeInput) error {
	if strings.TrimSpace(in.ChargeName) == "" {
		return errors.New("chargeName is required")
	}
	if in.ChargeType != domain.ChargePercentage && in.ChargeType != domain.ChargeFixed {
		return errors.New("chargeType is invalid")
	}
	if in.Value <= 0 {
		return errors.New("value must be greater than zero")
	}
	if in.Category != domain.ChargeSystem && in.Category != domain.ChargeOptional {
		return errors.New("category is invalid")
	}
	return nil
}

func chargeID(c domain.Charge) string { return c.ID }
