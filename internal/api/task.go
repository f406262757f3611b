package api

import (
	"context"
	"net/url"

	"github.com/mayurimulay789/posadmin-client/internal/domain"
	"github.com/mayurimulay789/posadmin-client/internal/rest"
)

type TaskAPI struct {
	res *rest.Resource
}

type TaskInput struct {
	TaskName         string `json:"taskName"`
	TaskMessage      string `json:"taskMessage"`
	AssignedTo       string `json:"assignedTo"`
	DueDate          string `json:"dueDate"`
	Priority         string `json:"priority,omitempty"`
	Category         string `json:"category,omitempty"`
	EstimatedTime    int    `json:"estimatedTime,omitempty"`
	TaskDurationType string `json:"taskDurationType,omitempty"`
}

// All is the unrestricted list; the backend rejects non-merchants.
func (a *TaskAPI) All(ctx context.Context, f domain.ListFilter) ([]domain.Task, domain.Pagination, error) {
	return a.list(ctx, "", filterQuery(f))
}

// Mine lists tasks assigned to the current user.
func (a *TaskAPI) Mine(ctx context.Context, f domain.ListFilter) ([]domain.Task, domain.Pagination, error) {
	return a.list(ctx, "/my-tasks", filterQuery(f))
}

// AssignedByMe lists tasks the current user assigned to others.
func (a *TaskAPI) AssignedByMe(ctx context.Context, f domain.ListFilter) ([]domain.Task, domain.Pagination, error) {
	return a.list(ctx, "/assigned-tasks", filterQuery(f))
}

func (a *TaskAPI) MyPending(ctx context.Context, f domain.ListFilter) ([]domain.Task, domain.Pagination, error) {
	return a.list(ctx, "/my-pending-tasks", filterQuery(f))
}

func (a *TaskAPI) MyCompleted(ctx context.Context, f domain.ListFilter) ([]domain.Task, domain.Pagination, error) {
	return a.list(ctx, "/my-completed-tasks", filterQuery(f))
}

func (a *TaskAPI) list(ctx context.Context, path string, q url.Values) ([]domain.Task, domain.Pagination, error) {
	var out dataPage[domain.Task]
	if err := a.res.Get(ctx, path, q, &out); err != nil {
		return nil, domain.Pagination{}, err
	}
	return out.Data, out.page(), nil
}

func (a *TaskAPI) Create(ctx context.Context, in TaskInput) (*domain.Task, error) {
	var out entityResponse[domain.Task]
	if err := a.res.Post(ctx, "", in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (a *TaskAPI) Update(ctx context.Context, id string, in TaskInput) (*domain.Task, error) {
	var out entityResponse[domain.Task]
	if err := a.res.Put(ctx, "/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Complete marks the task done. A completion message is required; the
// response sets status and completedTime.
func (a *TaskAPI) Complete(ctx context.Context, id, message string) (*domain.Task, error) {
	body := map[string]string{"completionNote": message}
	var out entityResponse[domain.Task]
	if err := a.res.Patch(ctx, "/"+id+"/complete", body, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (a *TaskAPI) Delete(ctx context.Context, id string) error {
	return a.res.Delete(ctx, "/"+id, nil)
}
