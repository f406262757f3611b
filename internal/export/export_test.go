package export

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mayurimulay789/posadmin-client/internal/api"
	"github.com/mayurimulay789/posadmin-client/internal/rest"
)

type stubToken struct{}

func (stubToken) Token() string { return "test-token" }

func newTestService(t *testing.T, routes func(chi.Router)) *Service {
	t.Helper()
	r := chi.NewRouter()
	routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	client := api.NewClient(rest.New(srv.URL, 5*time.Second, stubToken{}, nil))
	return NewService(client.Attendance, t.TempDir(), nil)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "attendance_2026-08-01_to_2026-08-31.csv", Filename("2026-08-01", "2026-08-31", "csv"))
	assert.Equal(t, "attendance_2026-08-01_to_2026-08-31.xlsx", Filename("2026-08-01", "2026-08-31", "xlsx"))
	assert.Equal(t, "text/csv;charset=utf-8", ContentTypeCSV)
}

func TestMarshalRows(t *testing.T) {
	rows := []map[string]any{
		{"name": "Jane, Jr.", "hours": 8, "date": "2026-08-28"},
		{"name": "Joe", "hours": 7.5, "date": "2026-08-28"},
	}

	out, err := MarshalRows(rows)
	require.NoError(t, err)

	// Headers come from the first row's keys, sorted.
	want := "date,hours,name\n2026-08-28,8,\"Jane, Jr.\"\n2026-08-28,7.5,Joe\n"
	assert.Equal(t, want, string(out))
}

func TestMarshalRowsEmpty(t *testing.T) {
	out, err := MarshalRows(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestAttendanceCSVPassesRawCSVThrough(t *testing.T) {
	svc := newTestService(t, func(r chi.Router) {
		r.Get("/attendance/export", func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "2026-08-01", req.URL.Query().Get("startDate"))
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			_, _ = w.Write([]byte("name,hours\nJane,8\n"))
		})
	})

	path, err := svc.AttendanceCSV(context.Background(), "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, Filename("2026-08-01", "2026-08-31", "csv"), filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "name,hours\nJane,8\n", string(data))
}

func TestAttendanceCSVSerializesJSONRows(t *testing.T) {
	svc := newTestService(t, func(r chi.Router) {
		r.Get("/attendance/export", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"name":"Jane","hours":8}]`))
		})
	})

	path, err := svc.AttendanceCSV(context.Background(), "2026-08-01", "2026-08-31")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hours,name\n8,Jane\n", string(data))
}

func TestAttendanceCSVFallsBackToDirectDownload(t *testing.T) {
	var direct atomic.Int64
	svc := newTestService(t, func(r chi.Router) {
		r.Get("/attendance/export", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"export broke"}`))
		})
		r.Get("/attendance/export/download", func(w http.ResponseWriter, req *http.Request) {
			direct.Add(1)
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			_, _ = w.Write([]byte("name,hours\nJane,8\n"))
		})
	})

	path, err := svc.AttendanceCSV(context.Background(), "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	assert.EqualValues(t, 1, direct.Load())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "name,hours\nJane,8\n", string(data))
}

func TestAttendanceCSVReportsOriginalErrorWhenBothFail(t *testing.T) {
	svc := newTestService(t, func(r chi.Router) {
		r.Get("/attendance/export", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"export broke"}`))
		})
		r.Get("/attendance/export/download", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"download broke too"}`))
		})
	})

	_, err := svc.AttendanceCSV(context.Background(), "2026-08-01", "2026-08-31")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export broke")
}

func TestAttendanceXLSXRoundTrips(t *testing.T) {
	svc := newTestService(t, func(r chi.Router) {
		r.Get("/attendance/export", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"name":"Jane","hours":8},{"name":"Joe","hours":7}]`))
		})
	})

	path, err := svc.AttendanceXLSX(context.Background(), "2026-08-01", "2026-08-31")
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"hours", "name"}, rows[0])
	assert.Equal(t, []string{"8", "Jane"}, rows[1])
	assert.Equal(t, []string{"7", "Joe"}, rows[2])
}
