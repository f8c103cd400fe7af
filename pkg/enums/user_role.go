package enums

import "fmt"

// UserRole represents a farm-level permissions role.
type UserRole string

const (
	UserRoleAdmin       UserRole = "ADMIN"
	UserRoleSales       UserRole = "SALES"
	UserRoleProcurement UserRole = "PROCUREMENT"
	UserRoleCaretaker   UserRole = "CARETAKER"
	UserRoleClient      UserRole = "CLIENT"
)

var validUserRoles = []UserRole{
	UserRoleAdmin,
	UserRoleSales,
	UserRoleProcurement,
	UserRoleCaretaker,
	UserRoleClient,
}

// StaffRoles lists every role granted to farm personnel, as opposed to
// customer accounts.
func StaffRoles() []UserRole {
	return []UserRole{UserRoleAdmin, UserRoleSales, UserRoleProcurement, UserRoleCaretaker}
}

// String implements fmt.Stringer.
func (u UserRole) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UserRole.
func (u UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == u {
			return true
		}
	}
	return false
}

// IsStaff reports whether the role belongs to farm personnel.
func (u UserRole) IsStaff() bool {
	return u == UserRoleAdmin || u == UserRoleSales || u == UserRoleProcurement || u == UserRoleCaretaker
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
