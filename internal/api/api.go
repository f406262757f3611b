// Package api exposes one thin module per backend resource. Each module is
// a method-per-endpoint wrapper over the shared rest client; no caching or
// state lives here.
package api

import (
	"net/url"
	"strconv"

	"github.com/mayurimulay789/posadmin-client/internal/domain"
	"github.com/mayurimulay789/posadmin-client/internal/rest"
)

// Client bundles every domain API module over one transport.
type Client struct {
	Auth        *AuthAPI
	Employees   *EmployeeAPI
	Customers   *CustomerAPI
	Expenses    *ExpenseAPI
	Tasks       *TaskAPI
	Attendance  *AttendanceAPI
	Permissions *PermissionAPI
	Dashboard   *DashboardAPI
	Charges     *ChargeAPI
}

// NewClient initializes all domain modules.
func NewClient(t *rest.Client) *Client {
	return &Client{
		Auth:        &AuthAPI{res: t.Resource("/auth", "auth", "authentication failed")},
		Employees:   &EmployeeAPI{res: t.Resource("/employees", "employee", "failed to fetch employees")},
		Customers:   &CustomerAPI{res: t.Resource("/customers", "customer", "failed to fetch customers")},
		Expenses:    &ExpenseAPI{res: t.Resource("/expenses", "expense", "failed to fetch expenses")},
		Tasks:       &TaskAPI{res: t.Resource("/tasks", "task", "failed to fetch tasks")},
		Attendance:  &AttendanceAPI{res: t.Resource("/attendance", "attendance", "failed to fetch attendance")},
		Permissions: &PermissionAPI{res: t.Resource("/permissions", "permission", "failed to fetch permissions")},
		Dashboard:   &DashboardAPI{res: t.Resource("/dashboard", "dashboard", "failed to load dashboard")},
		Charges:     &ChargeAPI{res: t.Resource("/charges", "charge", "failed to fetch charges")},
	}
}

// filterQuery converts a list filter to query parameters, omitting zero
// values.
func filterQuery(f domain.ListFilter) url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Role != "" {
		q.Set("role", string(f.Role))
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.StartDate != "" {
		q.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("endDate", f.EndDate)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// dataPage is the customer/expense family list envelope.
type dataPage[T any] struct {
	Data        []T   `json:"data"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	Total       int64 `json:"total"`
}

func (p dataPage[T]) page() domain.Pagination {
	return domain.NewPagination(p.CurrentPage, p.TotalPages, p.Total)
}

// userPage is the employee family list envelope. HasNext/HasPrev from the
// wire are ignored; the flags are re-derived from the counters.
type userPage[T any] struct {
	Users      []T `json:"users"`
	Pagination struct {
		Current int   `json:"current"`
		Pages   int   `json:"pages"`
		Total   int64 `json:"total"`
	} `json:"pagination"`
}

func (p userPage[T]) page() domain.Pagination {
	return domain.NewPagination(p.Pagination.Current, p.Pagination.Pages, p.Pagination.Total)
}

// entityResponse is the single-entity mutation envelope.
type entityResponse[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}
