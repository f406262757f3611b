package state

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/mayurimulay789/posadmin-client/internal/api"
	"github.com/mayurimulay789/posadmin-client/internal/authz"
	"github.com/mayurimulay789/posadmin-client/internal/domain"
	"github.com/mayurimulay789/posadmin-client/internal/metrics"
)

var ErrExpenseLocked = errors.New("expense can no longer be modified")

// ExpenseStore caches the full and personal expense lists. The editability
// rule (owner + same calendar day, merchants exempt) is checked before any
// mutation is dispatched; the server remains the final authority when the
// check is bypassed.
type ExpenseStore struct {
	mu    sync.Mutex
	api   *api.ExpenseAPI
	users UserProvider
	guard *fetchGuard

	all      []domain.Expense
	mine     []domain.Expense
	allPage  domain.Pagination
	minePage domain.Pagination
	stats    *api.ExpenseStats
	status   Status

	// now is swappable for the calendar-day tests.
	now func() time.Time
}

func NewExpenseStore(a *api.ExpenseAPI, users UserProvider) *ExpenseStore {
	return &ExpenseStore{api: a, users: users, guard: newFetchGuard(), now: time.Now}
}

func (s *ExpenseStore) All() []domain.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Expense, len(s.all))
	copy(out, s.all)
	return out
}

func (s *ExpenseStore) Mine() []domain.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Expense, len(s.mine))
	copy(out, s.mine)
	return out
}

func (s *ExpenseStore) Page() domain.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allPage
}

func (s *ExpenseStore) MinePage() domain.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minePage
}

func (s *ExpenseStore) Stats() *api.ExpenseStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *ExpenseStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *ExpenseStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Error = ""
}

func (s *ExpenseStore) ClearSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Success = ""
}

// CanModify is the advisory precheck used for button affordance.
func (s *ExpenseStore) CanModify(expense domain.Expense) bool {
	return authz.CanModifyExpense(expense, s.users.User(), s.now())
}

func (s *ExpenseStore) Load(ctx context.Context, f domain.ListFilter) error {
	ticket := s.guard.begin("all")
	s.mu.Lock()
	s.status.setLoading()
	s.mu.Unlock()

	items, page, err := s.api.List(ctx, f)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.guard.current("all", ticket) {
		metrics.StaleFetches.WithLabelValues("expense").Inc()
		return nil
	}
	if err != nil {
		s.all = nil
		s.allPage = domain.Pagination{}
		s.status.setError(err.Error())
		return err
	}
	s.all = items
	s.allPage = page
	s.status.settle()
	return nil
}

func (s *ExpenseStore) LoadMine(ctx context.Context, f domain.ListFilter) error {
	ticket := s.guard.begin("mine")
	s.mu.Lock()
	s.status.setLoading()
	s.mu.Unlock()

	items, page, err := s.api.Mine(ctx, f)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.guard.current("mine", ticket) {
		metrics.StaleFetches.WithLabelValues("expense").Inc()
		return nil
	}
	if err != nil {
		s.mine = nil
		s.minePage = domain.Pagination{}
		s.status.setError(err.Error())
		return err
	}
	s.mine = items
	s.minePage = page
	s.status.settle()
	return nil
}

func (s *ExpenseStore) Create(ctx context.Context, in api.ExpenseInput) error {
	if err := validateExpenseInput(in); err != nil {
		return err
	}

	created, err := s.api.Create(ctx, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.setError(err.Error())
		return err
	}
	s.all = append([]domain.Expense{*created}, s.all...)
	s.mine = append([]domain.Expense{*created}, s.mine...)
	s.status.setSuccess("expense recorded")
	return nil
}

func (s *ExpenseStore) Update(ctx context.Context, id string, in api.ExpenseInput) error {
	if err := s.precheck(id); err != nil {
		return err
	}

	updated, err := s.api.Update(ctx, id, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.setError(err.Error())
		return err
	}
	replaceByID(s.all, id, expenseID, *updated)
	replaceByID(s.mine, id, expenseID, *updated)
	s.status.setSuccess("expense updated")
	return nil
}

func (s *ExpenseStore) Delete(ctx context.Context, id string) error {
	if err := s.precheck(id); err != nil {
		return err
	}

	err := s.api.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.setError(err.Error())
		return err
	}
	s.all = removeByID(s.all, id, expenseID)
	s.mine = removeByID(s.mine, id, expenseID)
	s.status.setSuccess("expense deleted")
	return nil
}

func (s *ExpenseStore) LoadStats(ctx context.Context) error {
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

// precheck blocks a mutation when the cached copy fails the editability
// rule. Unknown ids pass through; the server decides.
func (s *ExpenseStore) precheck(id string) error {
	s.mu.Lock()
	var found *domain.Expense
	for i := range s.all {
		if s.all[i].ID == id {
			found = &s.all[i]
			break
		}
	}
	if found == nil {
		for i := range s.mine {
			if s.mine[i].ID == id {
				found = &s.mine[i]
				break
			}
		}
	}
	var expense domain.Expense
	if found != nil {
		expense = *found
	}
	s.mu.Unlock()

	if found != nil && !authz.CanModifyExpense(expense, s.users.User(), s.now()) {
		return ErrExpenseLocked
	}
	return nil
}

func validateExpenseInput(in api.ExpenseInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.New("title is required")
	}
	if in.Amount <= 0 {
		return errors.New("amount must be greater than zero")
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return errors.New("paymentMethod is required")
	}
	return nil
}

func expenseID(e domain.Expense) string { return e.ID }
