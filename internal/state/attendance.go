package state

import (
	"context"
	"errors"
	"sync"

	"github.com/mayurimulay789/posadmin-client/internal/api"
	"github.com/mayurimulay789/posadmin-client/internal/authz"
	"github.com/mayurimulay789/posadmin-client/internal/domain"
	"github.com/mayurimulay789/posadmin-client/internal/metrics"
)

var ErrApprovalSettled = errors.New("attendance approval is already settled")

// AttendanceStore caches the attendance list plus the viewer's own open
// record. Approval decisions arrive as partial payloads and are merged into
// the cached record.
type AttendanceStore struct {
	mu    sync.Mutex
	api   *api.AttendanceAPI
	users UserProvider
	guard *fetchGuard

	records []domain.AttendanceRecord
	page    domain.Pagination
	current *domain.AttendanceRecord
	status  Status
}

func NewAttendanceStore(a *api.AttendanceAPI, users UserProvider) *AttendanceStore {
	return &AttendanceStore{api: a, users: users, guard: newFetchGuard()}
}

func (s *AttendanceStore) Records() []domain.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AttendanceRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *AttendanceStore) Page() domain.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Current is the viewer's open record, if a shift is running.
func (s *AttendanceStore) Current() *domain.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	r := *s.current
	return &r
}

func (s *AttendanceStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *AttendanceStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Error = ""
}

func (s *AttendanceStore) ClearSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Success = ""
}

func (s *AttendanceStore) Load(ctx context.Context, f domain.ListFilter) error {
	ticket := s.guard.begin("list")
	s.mu.Lock()
	s.status.setLoading()
	s.mu.Unlock()

	items, page, err := s.api.List(ctx, f)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.guard.current("list", ticket) {
		metrics.StaleFetches.WithLabelValues("attendance").Inc()
		return nil
	}
	if err != nil {
		s.records = nil
		s.page = domain.Pagination{}
		s.status.setError(err.Error())
		return err
	}
	s.records = items
	s.page = page
	s.status.settle()
	return nil
}

func (s *AttendanceStore) Start(ctx context.Context, selfie string) error {
	record, err := s.api.Start(ctx, selfie)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.setError(err.Error())
		return err
	}
	s.current = record
	s.records = append([]domain.AttendanceRecord{*record}, s.records...)
	s.status.setSuccess("shift started")
	return nil
}

func (s *AttendanceStore) End(ctx context.Context) error {
	record, err := s.api.End(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.setError(err.Error())
		return err
	}
	s.current = nil
	replaceByID(s.records, record.ID, attendanceID, *record)
	s.status.setSuccess("shift ended")
	return nil
}

// Approve applies a one-way approval transition. Records already settled
// are rejected before any network call; the response patch is merged, not
// substituted, because it may not be a full record.
func (s *AttendanceStore) Approve(ctx context.Context, id string, in api.ApprovalInput) error {
	if !authz.CanApproveAttendance(s.users.User()) {
		return errors.New("not allowed to approve attendance")
	}

	s.mu.Lock()
	for i := range s.records {
		if s.records[i].ID == id && s.records[i].ApprovalStatus != domain.ApprovalPending {
			s.mu.Unlock()
			return ErrApprovalSettled
		}
	}
	s.mu.Unlock()

	patch, err := s.api.Approve(ctx, id, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.setError(err.Error())
		return err
	}
	for i := range s.records {
		if s.records[i].ID != id {
			continue
		}
		if patch.ApprovalStatus != nil {
			s.records[i].ApprovalStatus = *patch.ApprovalStatus
		}
		if patch.Remarks != nil {
			s.records[i].Remarks = *patch.Remarks
		}
	}
	s.status.setSuccess("attendance " + string(in.Status))
	return nil
}

func attendanceID(r domain.AttendanceRecord) string { return r.ID }
