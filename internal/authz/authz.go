// Package authz holds the client-side capability checks. They mirror the
// backend's rules for button enable/disable only; the server's rejection is
// always the authority and a 403 must still be handled gracefully.
package authz

import (
	"time"

	"github.com/mayurimulay789/posadmin-client/internal/domain"
)

// Has reports whether the user holds the permission. Merchants short-circuit
// every check to true regardless of the cached set.
func Has(user *domain.UserRef, perms []string, perm string) bool {
	if user == nil {
		return false
	}
	if user.Role == domain.RoleMerchant {
		return true
	}
	for _, p := range perms {
		if p == perm {
			return true
		}
	}
	return false
}

// HasAny reports whether the user holds at least one of the permissions.
func HasAny(user *domain.UserRef, perms []string, required ...string) bool {
	if user == nil {
		return false
	}
	if user.Role == domain.RoleMerchant {
		return true
	}
	for _, r := range required {
		if Has(user, perms, r) {
			return true
		}
	}
	return false
}

// HasAll reports whether the user holds every one of the permissions.
func HasAll(user *domain.UserRef, perms []string, required ...string) bool {
	if user == nil {
		return false
	}
	if user.Role == domain.RoleMerchant {
		return true
	}
	for _, r := range required {
		if !Has(user, perms, r) {
			return false
		}
	}
	return true
}

// CanModifyExpense: merchants always; anyone else only for their own
// expenses dated today (local calendar day).
func CanModifyExpense(expense domain.Expense, user *domain.UserRef, now time.Time) bool {
	if user == nil {
		return false
	}
	if user.Role == domain.RoleMerchant {
		return true
	}
	if expense.CreatedBy != user.ID {
		return false
	}
	return sameCalendarDay(expense.Date.In(now.Location()), now)
}

// CanManageEmployees: employee mutations are merchant-only.
func CanManageEmployees(user *domain.UserRef) bool {
	return user != nil && user.Role == domain.RoleMerchant
}

// CanManageCharges: merchant or manager.
func CanManageCharges(user *domain.UserRef) bool {
	if user == nil {
		return false
	}
	return user.Role == domain.RoleMerchant || user.Role == domain.RoleManager
}

// CanViewAllTasks gates the unrestricted task list.
func CanViewAllTasks(user *domain.UserRef) bool {
	return user != nil && user.Role == domain.RoleMerchant
}

// CanModifyTask: the assigner can always edit; merchants can edit anything.
func CanModifyTask(task domain.Task, user *domain.UserRef) bool {
	if user == nil {
		return false
	}
	return user.Role == domain.RoleMerchant || task.AssignedBy == user.ID
}

// CanModifyCustomer: the creator or a merchant.
func CanModifyCustomer(customer domain.Customer, user *domain.UserRef) bool {
	if user == nil {
		return false
	}
	return user.Role == domain.RoleMerchant || customer.CreatedBy == user.ID
}

// CanApproveAttendance: merchants and managers decide approvals.
func CanApproveAttendance(user *domain.UserRef) bool {
	if user == nil {
		return false
	}
	return user.Role == domain.RoleMerchant || user.Role == domain.RoleManager
}

func sameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
