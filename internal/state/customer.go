package state

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/mayurimulay789/posadmin-client/internal/api"
	"github.com/mayurimulay789/posadmin-client/internal/domain"
	"github.com/mayurimulay789/posadmin-client/internal/metrics"
)

// CustomerView names one of the four independently-fetched customer lists.
type CustomerView string

const (
	CustomerAll        CustomerView = "all"
	CustomerMine       CustomerView = "mine"
	CustomerMembership CustomerView = "membership"
	CustomerSearch     CustomerView = "search"
)

// CustomerStore keeps customers normalized by id with the four views as id
// lists. A mutation patches the entity once; every view containing it
// observes the new value on the next read.
type CustomerStore struct {
	mu    sync.Mutex
	api   *api.CustomerAPI
	users UserProvider
	guard *fetchGuard

	byID   map[string]domain.Customer
	views  map[CustomerView][]string
	pages  map[CustomerView]domain.Pagination
	status Status
}

func NewCustomerStore(a *api.CustomerAPI, users UserProvider) *CustomerStore {
	return &CustomerStore{
		api:   a,
		users: users,
		guard: newFetchGuard(),
		byID:  map[string]domain.Customer{},
		views: map[CustomerView][]string{},
		pages: map[CustomerView]domain.Pagination{},
	}
}

// View resolves a view's id list against the normalized entities.
func (s *CustomerStore) View(v CustomerView) []domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.views[v]
	out := make([]domain.Customer, 0, len(ids))
	for _, id := range ids {
		if c, ok := s.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

func (s *CustomerStore) Page(v CustomerView) domain.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages[v]
}

func (s *CustomerStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *CustomerStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Error = ""
}

func (s *CustomerStore) ClearSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Success = ""
}

func (s *CustomerStore) Load(ctx context.Context, f domain.ListFilter) error {
	return s.load(ctx, CustomerAll, func(ctx context.Context) ([]domain.Customer, domain.Pagination, error) {
		return s.api.List(ctx, f)
	})
}

func (s *CustomerStore) LoadMine(ctx context.Context, f domain.ListFilter) error {
	return s.load(ctx, CustomerMine, func(ctx context.Context) ([]domain.Customer, domain.Pagination, error) {
		return s.api.Mine(ctx, f)
	})
}

func (s *CustomerStore) LoadByMembership(ctx context.Context, membershipID string, f domain.ListFilter) error {
	return s.load(ctx, CustomerMembership, func(ctx context.Context) ([]domain.Customer, domain.Pagination, error) {
		return s.api.ByMembership(ctx, membershipID, f)
	})
}

func (s *CustomerStore) Search(ctx context.Context, term string, f domain.ListFilter) error {
	return s.load(ctx, CustomerSearch, func(ctx context.Context) ([]domain.Customer, domain.Pagination, error) {
		return s.api.Search(ctx, term, f)
	})
}

func (s *CustomerStore) load(ctx context.Context, view CustomerView, fetch func(context.Context) ([]domain.Customer, domain.Pagination, error)) error {
	ticket := s.guard.begin(string(view))
	s.mu.Lock()
	s.status.setLoading()
	s.mu.Unlock()

	items, page, err := fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.guard.current(string(view), ticket) {
		metrics.StaleFetches.WithLabelValues("customer").Inc()
		return nil
	}
	if err != nil {
		s.views[view] = nil
		s.pages[view] = domain.Pagination{}
		s.pruneLocked()
		s.status.setError(err.Error())
		return err
	}
	ids := make([]string, 0, len(items))
	for _, c := range items {
		s.byID[c.ID] = c
		ids = append(ids, c.ID)
	}
	s.views[view] = ids
	s.pages[view] = page
	s.pruneLocked()
	s.status.settle()
	return nil
}

// Create validates before dispatch: a missing name never reaches the
// network.
func (s *CustomerStore) Create(ctx context.Context, in api.CustomerInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("name is required")
	}

	created, err := s.api.Create(ctx, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.setError(err.Error())
		return err
	}
	s.byID[created.ID] = *created
	s.views[CustomerAll] = append([]string{created.ID}, s.views[CustomerAll]...)
	if user := s.users.User(); user != nil && created.CreatedBy == user.ID {
		s.views[CustomerMine] = append([]string{created.ID}, s.views[CustomerMine]...)
	}
	s.status.setSuccess("customer created")
	return nil
}

func (s *CustomerStore) Update(ctx context.Context, id string, in api.CustomerInput) error {
	updated, err := s.api.Update(ctx, id, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.setError(err.Error())
		return err
	}
	if _, ok := s.byID[id]; ok {
		s.byID[id] = *updated
	}
	s.status.setSuccess("customer updated")
	return nil
}

func (s *CustomerStore) Delete(ctx context.Context, id string) error {
	err := s.api.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.setError(err.Error())
		return err
	}
	for view := range s.views {
		s.views[view] = removeID(s.views[view], id)
	}
	delete(s.byID, id)
	s.status.setSuccess("customer deleted")
	return nil
}

// ToggleStatus merges the partial response; the toggle payload is not a
// full customer.
func (s *CustomerStore) ToggleStatus(ctx context.Context, id string) error {
	patch, err := s.api.ToggleStatus(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.setError(err.Error())
		return err
	}
	if c, ok := s.byID[id]; ok && patch.IsActive != nil {
		c.IsActive = *patch.IsActive
		s.byID[id] = c
	}
	s.status.setSuccess("customer status updated")
	return nil
}

// pruneLocked drops entities no view references anymore.
func (s *CustomerStore) pruneLocked() {
	for id := range s.byID {
		referenced := false
		for _, ids := range s.views {
			if containsID(ids, id) {
				referenced = true
				break
			}
		}
		if !referenced {
			delete(s.byID, id)
		}
	}
}
