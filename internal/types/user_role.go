package types

import (
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/samber/lo"
)

// UserRole gates access to the administrative API surface.
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleManager UserRole = "manager"
	UserRoleStaff   UserRole = "staff"
)

func (r UserRole) Validate() error {
	allowed := []UserRole{UserRoleAdmin, UserRoleManager, UserRoleStaff}
	if !lo.Contains(allowed, r) {
		return ierr.NewErrorf("invalid user role: %s", r).
			WithHint("Role must be one of admin, manager, staff").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// AtLeast reports whether the role grants at least the privileges of other.
// Ordering: admin > manager > staff.
func (r UserRole) AtLeast(other UserRole) bool {
	rank := map[UserRole]int{
		UserRoleStaff:   1,
		UserRoleManager: 2,
		UserRoleAdmin:   3,
	}
	return rank[r] >= rank[other]
}
