package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name    string
		current int
		pages   int
		total   int64
		hasNext bool
		hasPrev bool
	}{
		{name: "single page", current: 1, pages: 1, total: 4, hasNext: false, hasPrev: false},
		{name: "first of many", current: 1, pages: 5, total: 100, hasNext: true, hasPrev: false},
		{name: "middle page", current: 3, pages: 5, total: 100, hasNext: true, hasPrev: true},
		{name: "last page", current: 5, pages: 5, total: 100, hasNext: false, hasPrev: true},
		{name: "zero values clamp to one", current: 0, pages: 0, total: 0, hasNext: false, hasPrev: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.current, tt.pages, tt.total)
			assert.Equal(t, tt.hasNext, p.HasNext)
			assert.Equal(t, tt.hasPrev, p.HasPrev)
			assert.Equal(t, p.HasNext, p.Current < p.Pages)
			assert.Equal(t, p.HasPrev, p.Current > 1)
		})
	}
}

func TestRoleIsValid(t *testing.T) {
	for _, role := range []Role{RoleMerchant, RoleManager, RoleSupervisor, RoleStaff} {
		assert.True(t, role.IsValid(), string(role))
	}
	assert.False(t, Role("admin").IsValid())
	assert.False(t, Role("").IsValid())
}
