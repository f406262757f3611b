// Package state holds the per-resource cached stores between the API
// modules and the presentation layer. Lists are replaced wholesale on every
// successful fetch; mutations patch entities by id in every cached view, so
// no view can retain a stale copy of an entity another view has replaced.
package state

import (
	"github.com/mayurimulay789/posadmin-client/internal/domain"
)

// UserProvider yields the current user for store-level gating and advisory
// checks. Satisfied by session.Store.
type UserProvider interface {
	User() *domain.UserRef
}

// Status carries the transient flags every store exposes. Error and Success
// are mutually exclusive; the presentation layer clears them via the
// Clear* methods, which are idempotent.
type Status struct {
	Loading bool
	Error   string
	Success string
}

func (s *Status) setLoading() {
	s.Loading = true
}

func (s *Status) setError(msg string) {
	s.Loading = false
	s.Error = msg
	s.Success = ""
}

func (s *Status) setSuccess(msg string) {
	s.Loading = false
	s.Error = ""
	s.Success = msg
}

func (s *Status) settle() {
	s.Loading = false
}

func replaceByID[T any](items []T, id string, idOf func(T) string, replacement T) {
	for i := range items {
		if idOf(items[i]) == id {
			items[i] = replacement
		}
	}
}

func removeByID[T any](items []T, id string, idOf func(T) string) []T {
	out := items[:0]
	for _, item := range items {
		if idOf(item) != id {
			out = append(out, item)
		}
	}
	return out
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
