// Package authz holds the pure authorization predicates: role/permission and
// role/path decisions with no side effects. Predicates are total (never
// panic) and are meant to be re-evaluated on every check, since role and
// permission data can change mid-session after a profile refresh.
package authz

import (
	"strings"

	"github.com/herfa/gate/internal/gate/domain"
)

// rolePrefixes is the per-role allow-list of path prefixes. Access is
// granted iff the requested path starts with any prefix in the role's list.
// Adding a prefix can only grant, never revoke.
var rolePrefixes = map[domain.Role][]string{
	domain.RoleAdmin:   {"/admin", "/chat", "/"},
	domain.RoleArtisan: {"/artisan", "/chat", "/review", "/"},
	domain.RoleClient:  {"/client", "/chat", "/review", "/"},
}

// HasPermission reports whether the user holds the given capability.
// SUPER_ADMIN holds every permission implicitly; ADMIN holds exactly the
// enumerated set; every other role holds none.
func HasPermission(u *domain.UserRecord, p domain.Permission) bool {
	if u == nil {
		return false
	}

	switch u.Role {
	case domain.RoleSuperAdmin:
		return true
	case domain.RoleAdmin:
		for _, held := range u.Permissions {
			if held == p {
				return true
			}
		}
		return false
	case domain.RoleArtisan, domain.RoleClient:
		return false
	}
	return false
}

// CanAccess reports whether the user's role may reach the given resource
// path. A nil user is denied every path.
func CanAccess(u *domain.UserRecord, path string) bool {
	if u == nil {
		return false
	}

	// SUPER_ADMIN owns the whole path space.
	if u.Role == domain.RoleSuperAdmin {
		return true
	}

	prefixes, ok := rolePrefixes[u.Role]
	if !ok {
		return false
	}

	for _, prefix := range prefixes {
		if matchPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// matchPrefix treats the bare "/" entry as the home route only; otherwise a
// prefix list containing "/" would grant every role every path.
func matchPrefix(path, prefix string) bool {
	if prefix == "/" {
		return path == "/"
	}
	return strings.HasPrefix(path, prefix)
}

// Prefixes returns a copy of the role's path allow-list, mainly for
// diagnostics endpoints.
func Prefixes(role domain.Role) []string {
	src := rolePrefixes[role]
	out := make([]string, len(src))
	copy(out, src)
	return out
}
