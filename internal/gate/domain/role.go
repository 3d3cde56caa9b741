package domain

import "fmt"

// Role is the closed set of principal roles in the marketplace. Keeping it a
// typed enum forces every access rule to be revisited when a role is added.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleArtisan    Role = "ARTISAN"
	RoleClient     Role = "CLIENT"
)

// Roles lists every valid role.
var Roles = []Role{RoleSuperAdmin, RoleAdmin, RoleArtisan, RoleClient}

// ParseRole validates a stored or wire-level role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSuperAdmin, RoleAdmin, RoleArtisan, RoleClient:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string { return string(r) }
