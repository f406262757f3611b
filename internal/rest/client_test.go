package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth, gotRequestID string
	r := chi.NewRouter()
	r.Get("/widgets", func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		gotRequestID = req.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, staticToken("t1"), nil)
	res := c.Resource("/widgets", "widget", "failed to fetch widgets")

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, res.Get(context.Background(), "", nil, &out))
	assert.True(t, out.OK)
	assert.Equal(t, "Bearer t1", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestAnonymousRequestOmitsAuthHeader(t *testing.T) {
	var gotAuth string
	hasHeader := true
	r := chi.NewRouter()
	r.Get("/widgets", func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		_, hasHeader = req.Header["Authorization"]
		_, _ = w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, staticToken(""), nil)
	require.NoError(t, c.Resource("/widgets", "widget", "fail").Get(context.Background(), "", nil, nil))
	assert.Empty(t, gotAuth)
	assert.False(t, hasHeader)
}

func TestUnauthorizedFiresGlobalHook(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/widgets", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	var teardowns atomic.Int32
	c := New(srv.URL, 5*time.Second, staticToken("stale"), nil)
	c.OnUnauthorized = func() { teardowns.Add(1) }
	res := c.Resource("/widgets", "widget", "failed to fetch widgets")

	err := res.Get(context.Background(), "", nil, nil)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "token expired", err.Error())
	assert.Equal(t, int32(1), teardowns.Load())

	// A second stale request fires the hook again; teardown itself must be
	// idempotent, the client does not dedupe.
	_ = res.Get(context.Background(), "", nil, nil)
	assert.Equal(t, int32(2), teardowns.Load())
}

func TestErrorShaping(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/widgets/message", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"name is taken"}`))
	})
	r.Get("/widgets/error", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"forbidden"}`))
	})
	r.Get("/widgets/blank", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`boom`))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, staticToken("t"), nil)
	res := c.Resource("/widgets", "widget", "failed to fetch widgets")

	err := res.Get(context.Background(), "/message", nil, nil)
	assert.EqualError(t, err, "name is taken")

	err = res.Get(context.Background(), "/error", nil, nil)
	assert.EqualError(t, err, "forbidden")

	// No parseable body falls back to the generic resource message.
	err = res.Get(context.Background(), "/blank", nil, nil)
	assert.EqualError(t, err, "failed to fetch widgets")
}

func TestNetworkErrorFallsBackToGenericMessage(t *testing.T) {
	c := New("http://127.0.0.1:1", 200*time.Millisecond, staticToken(""), nil)
	err := c.Resource("/widgets", "widget", "failed to fetch widgets").Get(context.Background(), "", nil, nil)
	assert.EqualError(t, err, "failed to fetch widgets")
}

func TestGetRawPassesCSVThrough(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/export", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		_, _ = w.Write([]byte("a,b\n1,2\n"))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, staticToken("t"), nil)
	body, contentType, err := c.Resource("", "export", "export failed").GetRaw(context.Background(), "/export", nil)
	require.NoError(t, err)
	assert.Contains(t, contentType, "text/csv")
	assert.Equal(t, "a,b\n1,2\n", string(body))
}
