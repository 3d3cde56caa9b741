package authz

import (
	"testing"

	"github.com/herfa/gate/internal/gate/domain"
	"github.com/stretchr/testify/require"
)

func userWithRole(role domain.Role, perms ...domain.Permission) *domain.UserRecord {
	return &domain.UserRecord{
		ID:          "01USER",
		Role:        role,
		IsActive:    true,
		Permissions: perms,
	}
}

func TestHasPermission(t *testing.T) {
	t.Parallel()

	t.Run("super admin holds everything without enumeration", func(t *testing.T) {
		u := userWithRole(domain.RoleSuperAdmin)
		for _, p := range domain.Permissions {
			require.True(t, HasPermission(u, p))
		}
	})

	t.Run("admin holds only enumerated permissions", func(t *testing.T) {
		u := userWithRole(domain.RoleAdmin, domain.PermModerateProfiles, domain.PermViewReports)

		require.True(t, HasPermission(u, domain.PermModerateProfiles))
		require.True(t, HasPermission(u, domain.PermViewReports))
		require.False(t, HasPermission(u, domain.PermManageUsers))
	})

	t.Run("artisan and client hold nothing", func(t *testing.T) {
		for _, role := range []domain.Role{domain.RoleArtisan, domain.RoleClient} {
			u := userWithRole(role, domain.PermManageUsers) // enumeration is ignored
			for _, p := range domain.Permissions {
				require.False(t, HasPermission(u, p))
			}
		}
	})

	t.Run("nil user is denied", func(t *testing.T) {
		require.False(t, HasPermission(nil, domain.PermManageUsers))
	})
}

func TestCanAccess(t *testing.T) {
	t.Parallel()

	t.Run("client role paths", func(t *testing.T) {
		u := userWithRole(domain.RoleClient)

		require.True(t, CanAccess(u, "/client/orders"))
		require.True(t, CanAccess(u, "/chat/42"))
		require.True(t, CanAccess(u, "/review/new"))
		require.True(t, CanAccess(u, "/"))
		require.False(t, CanAccess(u, "/admin/users"))
		require.False(t, CanAccess(u, "/artisan/dashboard"))
	})

	t.Run("artisan role paths", func(t *testing.T) {
		u := userWithRole(domain.RoleArtisan)

		require.True(t, CanAccess(u, "/artisan/dashboard"))
		require.False(t, CanAccess(u, "/client/orders"))
		require.False(t, CanAccess(u, "/admin"))
	})

	t.Run("admin role paths", func(t *testing.T) {
		u := userWithRole(domain.RoleAdmin)

		require.True(t, CanAccess(u, "/admin/users"))
		require.False(t, CanAccess(u, "/artisan/dashboard"))
	})

	t.Run("super admin reaches everything", func(t *testing.T) {
		u := userWithRole(domain.RoleSuperAdmin)

		for _, path := range []string{"/", "/admin/users", "/client/orders", "/anything/else"} {
			require.True(t, CanAccess(u, path))
		}
	})

	t.Run("home entry is exact, not a wildcard", func(t *testing.T) {
		u := userWithRole(domain.RoleClient)

		require.True(t, CanAccess(u, "/"))
		require.False(t, CanAccess(u, "/somewhere"))
	})

	t.Run("nil user is denied every path", func(t *testing.T) {
		for _, path := range []string{"/", "/client", "/admin"} {
			require.False(t, CanAccess(nil, path))
		}
	})
}

// Adding a prefix to a role's list never revokes access to a previously
// allowed path.
func TestCanAccessMonotonicity(t *testing.T) {
	t.Parallel()

	u := userWithRole(domain.RoleClient)

	allowedBefore := []string{}
	probes := []string{"/", "/client/a", "/chat/b", "/review/c", "/admin/x", "/ocr/scan"}
	for _, p := range probes {
		if CanAccess(u, p) {
			allowedBefore = append(allowedBefore, p)
		}
	}

	rolePrefixes[domain.RoleClient] = append(rolePrefixes[domain.RoleClient], "/ocr")
	defer func() {
		lst := rolePrefixes[domain.RoleClient]
		rolePrefixes[domain.RoleClient] = lst[:len(lst)-1]
	}()

	for _, p := range allowedBefore {
		require.True(t, CanAccess(u, p), "path %q lost access after adding a prefix", p)
	}
	require.True(t, CanAccess(u, "/ocr/scan"))
}
