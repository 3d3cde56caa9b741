package service

import (
	"context"
	"testing"

	"github.com/herfa/gate/internal/gate/domain"
	"github.com/stretchr/testify/require"
)

func TestOverviewCountsByRoleAndActivity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createUser(t, domain.RoleSuperAdmin, "root@example.com", false)
	env.createUser(t, domain.RoleArtisan, "a1@example.com", false)
	env.createUser(t, domain.RoleArtisan, "a2@example.com", false)
	off, _ := env.createUser(t, domain.RoleClient, "off@example.com", false)
	require.NoError(t, env.store.Users().SetActive(ctx, off.ID, false))

	svc := &StatsService{Store: env.store}
	overview, err := svc.Overview(ctx)
	require.NoError(t, err)

	require.Equal(t, 4, overview.TotalUsers)
	require.Equal(t, 3, overview.ActiveUsers)
	require.Equal(t, 1, overview.ByRole[domain.RoleSuperAdmin])
	require.Equal(t, 2, overview.ByRole[domain.RoleArtisan])
	require.Equal(t, 1, overview.ByRole[domain.RoleClient])
	require.False(t, overview.GeneratedAt.IsZero())
}
