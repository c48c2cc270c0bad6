package domain

import (
	"fmt"
	"strings"
)

// Role classifies what an authenticated user is allowed to reach. The
// collaborator is the authority for every role check; clients only use the
// role to decide which controls are worth showing.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// Roles lists every known role in precedence order.
var Roles = []Role{RoleAdmin, RoleManager, RoleStaff}

// ParseRole normalizes a role string coming from the collaborator.
func ParseRole(value string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	switch role {
	case RoleAdmin, RoleManager, RoleStaff:
		return role, nil
	}
	return "", fmt.Errorf("domain: unknown role %q", value)
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Identity is the authenticated user's summary. Exactly one identity is
// active per session; it is created at login and destroyed at logout or on
// an unauthorized response.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
