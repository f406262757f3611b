package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/mayurimulay789/posadmin-client/internal/domain"
	"github.com/mayurimulay789/posadmin-client/internal/rest"
)

type AttendanceAPI struct {
	res *rest.Resource
}

type ApprovalInput struct {
	Status  domain.ApprovalStatus `json:"approvalStatus"`
	Remarks string                `json:"remarks,omitempty"`
}

// AttendancePatch is the partial payload of an approval decision.
type AttendancePatch struct {
	ID             string                 `json:"id"`
	ApprovalStatus *domain.ApprovalStatus `json:"approvalStatus,omitempty"`
	Remarks        *string                `json:"remarks,omitempty"`
}

// ExportResult is the outcome of the structured export call: either raw CSV
// text passed through from the backend, or JSON rows to be serialized
// client-side.
type ExportResult struct {
	CSV  []byte
	Rows []map[string]any
}

func (a *AttendanceAPI) List(ctx context.Context, f domain.ListFilter) ([]domain.AttendanceRecord, domain.Pagination, error) {
	var out dataPage[domain.AttendanceRecord]
	if err := a.res.Get(ctx, "", filterQuery(f), &out); err != nil {
		return nil, domain.Pagination{}, err
	}
	return out.Data, out.page(), nil
}

func (a *AttendanceAPI) Start(ctx context.Context, selfie string) (*domain.AttendanceRecord, error) {
	body := map[string]string{}
	if selfie != "" {
		body["startSelfie"] = selfie
	}
	var out entityResponse[domain.AttendanceRecord]
	if err := a.res.Post(ctx, "/start", body, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (a *AttendanceAPI) End(ctx context.Context) (*domain.AttendanceRecord, error) {
	var out entityResponse[domain.AttendanceRecord]
	if err := a.res.Post(ctx, "/end", nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Approve records an approval decision. Approval is a one-way transition;
// rejections must carry remarks, enforced here before any network call.
func (a *AttendanceAPI) Approve(ctx context.Context, id string, in ApprovalInput) (*AttendancePatch, error) {
	if in.Status == domain.ApprovalRejected && strings.TrimSpace(in.Remarks) == "" {
		return nil, &rest.APIError{Message: "remarks are required to reject attendance"}
	}
	var out entityResponse[AttendancePatch]
	if err := a.res.Patch(ctx, "/"+id+"/approve", in, &out); err != nil {
		return nil, err
	}
	out.Data.ID = id
	return &out.Data, nil
}

// Export calls the structured export endpoint. The backend answers with
// either CSV text or JSON rows; both are returned as-is for the export
// layer to shape.
func (a *AttendanceAPI) Export(ctx context.Context, startDate, endDate string) (*ExportResult, error) {
	q := url.Values{}
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)
	body, contentType, err := a.res.GetRaw(ctx, "/export", q)
	if err != nil {
		return nil, err
	}
	if strings.Contains(contentType, "text/csv") {
		return &ExportResult{CSV: body}, nil
	}
	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err == nil {
		return &ExportResult{Rows: rows}, nil
	}
	// Some deployments wrap the rows in a data envelope.
	var wrapped struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Data != nil {
		return &ExportResult{Rows: wrapped.Data}, nil
	}
	return nil, &rest.APIError{Message: "failed to export attendance"}
}

// ExportDirect is the fallback framing: the backend streams the file itself.
func (a *AttendanceAPI) ExportDirect(ctx context.Context, startDate, endDate string) ([]byte, error) {
	q := url.Values{}
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)
	q.Set("download", "true")
	body, _, err := a.res.GetRaw(ctx, "/export/download", q)
	return body, err
}
