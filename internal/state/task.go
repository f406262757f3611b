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

// TaskView names one of the five task query surfaces.
type TaskView string

const (
	TaskAll         TaskView = "all"
	TaskMine        TaskView = "mine"
	TaskAssigned    TaskView = "assigned"
	TaskMyPending   TaskView = "myPending"
	TaskMyCompleted TaskView = "myCompleted"
)

// TaskStore keeps tasks normalized by id. The five query surfaces each hit
// their own endpoint, but resolve through one entity table; the two
// status-scoped views additionally re-filter by status at read time, so a
// completed task drops out of the pending view without list surgery.
type TaskStore struct {
	mu    sync.Mutex
	api   *api.TaskAPI
	users UserProvider
	guard *fetchGuard

	byID   map[string]domain.Task
	views  map[TaskView][]string
	pages  map[TaskView]domain.Pagination
	status Status
}

func NewTaskStore(a *api.TaskAPI, users UserProvider) *TaskStore {
	return &TaskStore{
		api:   a,
		users: users,
		guard: newFetchGuard(),
		byID:  map[string]domain.Task{},
		views: map[TaskView][]string{},
		pages: map[TaskView]domain.Pagination{},
	}
}

// View resolves a view's id list. Status-scoped views filter by their
// predicate so the view never contradicts the entity it resolves.
func (s *TaskStore) View(v TaskView) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.views[v]
	out := make([]domain.Task, 0, len(ids))
	for _, id := range ids {
		t, ok := s.byID[id]
		if !ok {
			continue
		}
		switch v {
		case TaskMyPending:
			if t.Status != domain.TaskPending {
				continue
			}
		case TaskMyCompleted:
			if t.Status != domain.TaskCompleted {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

func (s *TaskStore) Page(v TaskView) domain.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages[v]
}

func (s *TaskStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *TaskStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Error = ""
}

func (s *TaskStore) ClearSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Success = ""
}

// LoadAll is merchant-only; everyone else is redirected to their own task
// list, matching the backend's gate.
func (s *TaskStore) LoadAll(ctx context.Context, f domain.ListFilter) error {
	if !authz.CanViewAllTasks(s.users.User()) {
		return s.LoadMine(ctx, f)
	}
	return s.load(ctx, TaskAll, func(ctx context.Context) ([]domain.Task, domain.Pagination, error) {
		return s.api.All(ctx, f)
	})
}

func (s *TaskStore) LoadMine(ctx context.Context, f domain.ListFilter) error {
	return s.load(ctx, TaskMine, func(ctx context.Context) ([]domain.Task, domain.Pagination, error) {
		return s.api.Mine(ctx, f)
	})
}

func (s *TaskStore) LoadAssigned(ctx context.Context, f domain.ListFilter) error {
	return s.load(ctx, TaskAssigned, func(ctx context.Context) ([]domain.Task, domain.Pagination, error) {
		return s.api.AssignedByMe(ctx, f)
	})
}

func (s *TaskStore) LoadMyPending(ctx context.Context, f domain.ListFilter) error {
	return s.load(ctx, TaskMyPending, func(ctx context.Context) ([]domain.Task, domain.Pagination, error) {
		return s.api.MyPending(ctx, f)
	})
}

func (s *TaskStore) LoadMyCompleted(ctx context.Context, f domain.ListFilter) error {
	return s.load(ctx, TaskMyCompleted, func(ctx context.Context) ([]domain.Task, domain.Pagination, error) {
		return s.api.MyCompleted(ctx, f)
	})
}

func (s *TaskStore) load(ctx context.Context, view TaskView, fetch func(context.Context) ([]domain.Task, domain.Pagination, error)) error {
	ticket := s.guard.begin(string(view))
	s.mu.Lock()
	s.status.setLoading()
	s.mu.Unlock()

	items, page, err := fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.guard.current(string(view), ticket) {
		metrics.StaleFetches.WithLabelValues("task").Inc()
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
	for _, t := range items {
		s.byID[t.ID] = t
		ids = append(ids, t.ID)
	}
	s.views[view] = ids
	s.pages[view] = page
	s.pruneLocked()
	s.status.settle()
	return nil
}

func (s *TaskStore) Create(ctx context.Context, in api.TaskInput) error {
	if err := validateTaskInput(in); err != nil {
		return err
	}

	created, err := s.api.Create(ctx, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.setError(err.Error())
		return err
	}
	s.byID[created.ID] = *created
	s.views[TaskAssigned] = append([]string{created.ID}, s.views[TaskAssigned]...)
	if user := s.users.User(); user != nil && user.Role == domain.RoleMerchant {
		s.views[TaskAll] = append([]string{created.ID}, s.views[TaskAll]...)
	}
	s.status.setSuccess("task created")
	return nil
}

func (s *TaskStore) Update(ctx context.Context, id string, in api.TaskInput) error {
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
	s.status.setSuccess("task updated")
	return nil
}

// Complete requires a completion message before any network call.
func (s *TaskStore) Complete(ctx context.Context, id, message string) error {
	if strings.TrimSpace(message) == "" {
		return errors.New("completion message is required")
	}

	completed, err := s.api.Complete(ctx, id, message)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.setError(err.Error())
		return err
	}
	s.byID[id] = *completed
	if !containsID(s.views[TaskMyCompleted], id) {
		s.views[TaskMyCompleted] = append([]string{id}, s.views[TaskMyCompleted]...)
	}
	s.status.setSuccess("task completed")
	return nil
}

func (s *TaskStore) Delete(ctx context.Context, id string) error {
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
	s.status.setSuccess("task deleted")
	return nil
}

func (s *TaskStore) pruneLocked() {
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

func validateTaskInput(in api.TaskInput) error {
	if strings.TrimSpace(in.TaskName) == "" {
		return errors.New("taskName is required")
	}
	if strings.TrimSpace(in.AssignedTo) == "" {
		return errors.New("assignedTo is required")
	}
	if strings.TrimSpace(in.DueDate) == "" {
		return errors.New("dueDate is required")
	}
	return nil
}
