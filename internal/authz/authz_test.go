package authz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mayurimulay789/posadmin-client/internal/domain"
)

func user(id string, role domain.Role) *domain.UserRef {
	return &domain.UserRef{ID: id, Role: role}
}

func TestHas(t *testing.T) {
	perms := []string{"customers.read", "expenses.write"}

	tests := []struct {
		name string
		user *domain.UserRef
		perm string
		want bool
	}{
		{"nil user", nil, "customers.read", false},
		{"granted", user("u1", domain.RoleStaff), "customers.read", true},
		{"not granted", user("u1", domain.RoleStaff), "employees.write", false},
		{"merchant short-circuits without the grant", user("m1", domain.RoleMerchant), "employees.write", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Has(tt.user, perms, tt.perm))
		})
	}
}

func TestMerchantShortCircuitsEvenWithEmptySet(t *testing.T) {
	merchant := user("m1", domain.RoleMerchant)
	assert.True(t, Has(merchant, nil, "anything"))
	assert.True(t, HasAny(merchant, nil, "a", "b"))
	assert.True(t, HasAll(merchant, nil, "a", "b"))
}

func TestHasAnyHasAll(t *testing.T) {
	staff := user("u1", domain.RoleStaff)
	perms := []string{"customers.read"}

	assert.True(t, HasAny(staff, perms, "employees.write", "customers.read"))
	assert.False(t, HasAny(staff, perms, "employees.write", "charges.write"))

	assert.True(t, HasAll(staff, perms, "customers.read"))
	assert.False(t, HasAll(staff, perms, "customers.read", "employees.write"))

	assert.False(t, HasAny(nil, perms, "customers.read"))
	assert.False(t, HasAll(nil, perms, "customers.read"))
}

func TestCanModifyExpense(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, loc)

	expense := func(createdBy string, date time.Time) domain.Expense {
		return domain.Expense{ID: "e1", CreatedBy: createdBy, Date: date}
	}

	tests := []struct {
		name    string
		expense domain.Expense
		user    *domain.UserRef
		want    bool
	}{
		{"nil user", expense("u1", now), nil, false},
		{"merchant edits anyone's, any day", expense("other", now.AddDate(0, 0, -30)), user("m1", domain.RoleMerchant), true},
		{"creator same day", expense("u1", now.Add(-2 * time.Hour)), user("u1", domain.RoleStaff), true},
		{"creator yesterday", expense("u1", now.AddDate(0, 0, -1)), user("u1", domain.RoleStaff), false},
		{"someone else's, same day", expense("other", now), user("u1", domain.RoleStaff), false},
		{"manager is not exempt from the day rule", expense("g1", now.AddDate(0, 0, -1)), user("g1", domain.RoleManager), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanModifyExpense(tt.expense, tt.user, now))
		})
	}

	// The comparison is on the local calendar day, not elapsed time: an
	// expense stamped 23:30 UTC yesterday is still "today" at UTC+5.
	t.Run("calendar day in local zone", func(t *testing.T) {
		stamped := time.Date(2026, 8, 27, 23, 30, 0, 0, time.UTC)
		nowLocal := time.Date(2026, 8, 28, 4, 0, 0, 0, loc)
		assert.True(t, CanModifyExpense(expense("u1", stamped), user("u1", domain.RoleStaff), nowLocal))
	})
}

func TestRoleGates(t *testing.T) {
	merchant := user("m1", domain.RoleMerchant)
	manager := user("g1", domain.RoleManager)
	staff := user("s1", domain.RoleStaff)

	assert.True(t, CanManageEmployees(merchant))
	assert.False(t, CanManageEmployees(manager))
	assert.False(t, CanManageEmployees(nil))

	assert.True(t, CanManageCharges(merchant))
	assert.True(t, CanManageCharges(manager))
	assert.False(t, CanManageCharges(staff))

	assert.True(t, CanViewAllTasks(merchant))
	assert.False(t, CanViewAllTasks(manager))

	assert.True(t, CanApproveAttendance(merchant))
	assert.True(t, CanApproveAttendance(manager))
	assert.False(t, CanApproveAttendance(staff))
}

func TestCanModifyTaskAndCustomer(t *testing.T) {
	task := domain.Task{ID: "t1", AssignedBy: "g1"}
	assert.True(t, CanModifyTask(task, user("g1", domain.RoleSupervisor)))
	assert.False(t, CanModifyTask(task, user("s1", domain.RoleStaff)))
	assert.True(t, CanModifyTask(task, user("m1", domain.RoleMerchant)))
	assert.False(t, CanModifyTask(task, nil))

	customer := domain.Customer{ID: "c1", CreatedBy: "s1"}
	assert.True(t, CanModifyCustomer(customer, user("s1", domain.RoleStaff)))
	assert.False(t, CanModifyCustomer(customer, user("s2", domain.RoleStaff)))
	assert.True(t, CanModifyCustomer(customer, user("m1", domain.RoleMerchant)))
}
