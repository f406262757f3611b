package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mayurimulay789/posadmin-client/internal/api"
	"github.com/mayurimulay789/posadmin-client/internal/domain"
	"github.com/mayurimulay789/posadmin-client/internal/metrics"
)

// Phase is the auth state machine position.
type Phase string

const (
	PhaseAnonymous      Phase = "anonymous"
	PhaseAuthenticating Phase = "authenticating"
	PhaseAuthenticated  Phase = "authenticated"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// Store owns the session: token, user, permission cache and the cooldown
// clock. Every mutation of durable storage goes through here, so login,
// logout, 401 teardown and profile updates stay consistent.
//
// The cooldown clock is an explicit field rather than a package variable so
// it can be reset in tests and on login.
type Store struct {
	mu sync.Mutex

	storage *Storage
	log     *slog.Logger

	auth  *api.AuthAPI
	perms *api.PermissionAPI

	phase               Phase
	token               string
	user                *domain.UserRef
	permissions         []string
	permissionsFetched  bool
	lastPermissionFetch time.Time
	cooldown            time.Duration

	// OnExpired is invoked after a forced teardown so the consumer can
	// navigate to the login route. Optional.
	OnExpired func()
}

// NewStore restores any persisted session from storage.
func NewStore(storage *Storage, cooldown time.Duration, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	s := &Store{
		storage:  storage,
		log:      log,
		phase:    PhaseAnonymous,
		cooldown: cooldown,
	}
	s.restore()
	return s
}

// Attach wires the API modules. Done after construction because the rest
// client needs the store as its token source.
func (s *Store) Attach(auth *api.AuthAPI, perms *api.PermissionAPI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = auth
	s.perms = perms
}

func (s *Store) restore() {
	token := s.storage.Get(KeyToken)
	rawUser := s.storage.Get(KeyUser)
	if token == "" || rawUser == "" {
		return
	}
	var user domain.UserRef
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.log.Warn("discarding unreadable stored user", "err", err)
		_ = s.storage.Clear(KeyToken, KeyUser, KeyPermissions)
		return
	}
	s.token = token
	s.user = &user
	s.phase = PhaseAuthenticated
	if raw := s.storage.Get(KeyPermissions); raw != "" {
		var perms []string
		if err := json.Unmarshal([]byte(raw), &perms); err == nil {
			s.permissions = perms
		}
	}
}

// Token implements rest.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Store) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// IsAuthenticated holds exactly when both token and user are present.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.user != nil
}

// User returns a copy of the current user, or nil when anonymous.
func (s *Store) User() *domain.UserRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Permissions returns a copy of the cached permission set.
func (s *Store) Permissions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.permissions))
	copy(out, s.permissions)
	return out
}

// PermissionsFetched reports whether a fetch succeeded since login.
func (s *Store) PermissionsFetched() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.permissionsFetched
}

// Login authenticates and persists the session. On success the permission
// cooldown is reset to zero so the next FetchPermissions always hits the
// network.
func (s *Store) Login(ctx context.Context, email, password string) (*domain.UserRef, error) {
	s.mu.Lock()
	s.phase = PhaseAuthenticating
	auth := s.auth
	s.mu.Unlock()

	result, err := auth.Login(ctx, api.LoginInput{Email: email, Password: password})
	if err != nil {
		s.mu.Lock()
		s.phase = PhaseAnonymous
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = result.Token
	user := result.User
	s.user = &user
	s.phase = PhaseAuthenticated
	s.permissions = nil
	s.permissionsFetched = false
	s.lastPermissionFetch = time.Time{}
	s.persistLocked()
	return &user, nil
}

// FetchPermissions returns the permission set for the current user's role,
// skipping the network while the cache is warm. Network failure degrades to
// the cached copy instead of clearing it.
func (s *Store) FetchPermissions(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	role := s.user.Role
	warm := len(s.permissions) > 0 && time.Since(s.lastPermissionFetch) < s.cooldown
	cached := make([]string, len(s.permissions))
	copy(cached, s.permissions)
	perms := s.perms
	s.mu.Unlock()

	if warm {
		metrics.CacheHits.WithLabelValues("permission").Inc()
		return cached, nil
	}

	metrics.CacheMisses.WithLabelValues("permission").Inc()
	fetched, err := perms.ForRole(ctx, role)
	if err != nil {
		s.log.Warn("permission fetch failed, using cached set", "role", role, "err", err)
		if len(cached) > 0 {
			return cached, nil
		}
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.permissions = fetched
	s.permissionsFetched = true
	s.lastPermissionFetch = time.Now()
	if raw, err := json.Marshal(fetched); err == nil {
		_ = s.storage.Set(KeyPermissions, string(raw))
	}
	out := make([]string, len(fetched))
	copy(out, fetched)
	return out, nil
}

// Revalidate confirms the session with the backend. Unlike a permission
// fetch, failure here means the session is gone: full teardown.
func (s *Store) Revalidate(ctx context.Context) (*domain.UserRef, error) {
	s.mu.Lock()
	auth := s.auth
	if s.token == "" {
		s.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	s.mu.Unlock()

	user, err := auth.CurrentUser(ctx)
	if err != nil {
		s.Teardown()
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.persistLocked()
	u := *user
	return &u, nil
}

// UpdateProfile replaces the stored user wholesale with the server's copy.
func (s *Store) UpdateProfile(ctx context.Context, in api.ProfileInput) (*domain.UserRef, error) {
	s.mu.Lock()
	auth := s.auth
	s.mu.Unlock()

	user, err := auth.UpdateProfile(ctx, in)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.persistLocked()
	u := *user
	return &u, nil
}

// Logout notifies the backend best-effort, then tears the session down
// unconditionally.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	auth := s.auth
	authenticated := s.token != ""
	s.mu.Unlock()

	if authenticated && auth != nil {
		if err := auth.Logout(ctx); err != nil {
			s.log.Warn("logout notification failed", "err", err)
		}
	}
	s.Teardown()
}

// Teardown clears memory and durable storage. Idempotent: calling it on an
// already-anonymous store changes nothing.
func (s *Store) Teardown() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.permissions = nil
	s.permissionsFetched = false
	s.lastPermissionFetch = time.Time{}
	s.phase = PhaseAnonymous
	_ = s.storage.Clear(KeyToken, KeyUser, KeyPermissions)
	s.mu.Unlock()
}

// HandleUnauthorized is the rest client's 401 hook: teardown plus the
// navigate-to-login notification.
func (s *Store) HandleUnauthorized() {
	s.Teardown()
	if s.OnExpired != nil {
		s.OnExpired()
	}
}

func (s *Store) persistLocked() {
	if s.token != "" {
		_ = s.storage.Set(KeyToken, s.token)
	}
	if s.user != nil {
		if raw, err := json.Marshal(s.user); err == nil {
			_ = s.storage.Set(KeyUser, string(raw))
		}
	}
}
