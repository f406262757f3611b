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

// EmployeeStore caches the employee list. Mutations re-fetch nothing; the
// response entity is spliced into the cached array.
type EmployeeStore struct {
	mu    sync.Mutex
	api   *api.EmployeeAPI
	guard *fetchGuard

	employees []domain.Employee
	page      domain.Pagination
	stats     *api.EmployeeStats
	status    Status
}

func NewEmployeeStore(a *api.EmployeeAPI) *EmployeeStore {
	return &EmployeeStore{api: a, guard: newFetchGuard()}
}

func (s *EmployeeStore) Employees() []domain.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Employee, len(s.employees))
	copy(out, s.employees)
	return out
}

func (s *EmployeeStore) Page() domain.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

func (s *EmployeeStore) Stats() *api.EmployeeStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *EmployeeStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *EmployeeStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Error = ""
}

func (s *EmployeeStore) ClearSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Success = ""
}

// Load replaces the employee list and pagination wholesale. On failure the
// list is cleared, not partially merged.
func (s *EmployeeStore) Load(ctx context.Context, f domain.ListFilter) error {
	ticket := s.guard.begin("list")
	s.mu.Lock()
	s.status.setLoading()
	s.mu.Unlock()

	items, page, err := s.api.List(ctx, f)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.guard.current("list", ticket) {
		metrics.StaleFetches.WithLabelValues("employee").Inc()
		return nil
	}
	if err != nil {
		s.employees = nil
		s.page = domain.Pagination{}
		s.status.setError(err.Error())
		return err
	}
	s.employees = items
	s.page = page
	s.status.settle()
	return nil
}

func (s *EmployeeStore) Create(ctx context.Context, in api.EmployeeInput) error {
	if err := validateEmployeeInput(in); err != nil {
		return err
	}

	created, err := s.api.Create(ctx, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.setError(err.Error())
		return err
	}
	s.employees = append([]domain.Employee{*created}, s.employees...)
	s.status.setSuccess("employee created")
	return nil
}

func (s *EmployeeStore) Update(ctx context.Context, id string, in api.EmployeeInput) error {
	updated, err := s.api.Update(ctx, id, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.setError(err.Error())
		return err
	}
	replaceByID(s.employees, id, employeeID, *updated)
	s.status.setSuccess("employee updated")
	return nil
}

func (s *EmployeeStore) Delete(ctx context.Context, id string) error {
	err := s.api.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.setError(err.Error())
		return err
	}
	s.employees = removeByID(s.employees, id, employeeID)
	s.status.setSuccess("employee deleted")
	return nil
}

// ToggleStatus merges the partial response into the cached entity; the
// toggle payload is not a full employee.
func (s *EmployeeStore) ToggleStatus(ctx context.Context, id string) error {
	patch, err := s.api.ToggleStatus(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.setError(err.Error())
		return err
	}
	for i := range s.employees {
		if s.employees[i].ID == id && patch.IsActive != nil {
			s.employees[i].IsActive = *patch.IsActive
		}
	}
	s.status.setSuccess("employee status updated")
	return nil
}

func (s *EmployeeStore) LoadStats(ctx context.Context) error {
	stats, err := s.api.Stats(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.setError(err.Error())
		return err
	}
	s.stats = stats
	return nil
}

func validateEmployeeInput(in api.EmployeeInput) error {
	if strings.TrimSpace(in.FullName) == "" {
		return errors.New("fullName is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return errors.New("email is required")
	}
	if !in.Role.IsValid() {
		return errors.New("role is invalid")
	}
	return nil
}

func employeeID(e domain.Employee) string { return e.ID }
