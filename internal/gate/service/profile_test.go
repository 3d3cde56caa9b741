package service

import (
	"context"
	"testing"

	"github.com/herfa/gate/internal/gate/domain"
	"github.com/stretchr/testify/require"
)

func TestReplaceProfileRewritesSessionSnapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, _ := env.createUser(t, domain.RoleArtisan, "artisan@example.com", false)
	svc := &ProfileService{Store: env.store, Credentials: env.creds}

	before, err := env.auth.SignIn(ctx, "artisan@example.com", testPassword, true)
	require.NoError(t, err)

	updated, err := svc.ReplaceProfile(ctx, user.ID, ProfileUpdate{
		Name:     "Hassan Z.",
		Bio:      "Tisseur de tapis",
		Language: "fr",
	})
	require.NoError(t, err)
	require.Equal(t, "Hassan Z.", updated.Name)

	// Replacement is wholesale: fields left out of the update are cleared.
	require.Empty(t, updated.AvatarURL)

	rec, ok, err := env.creds.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Hassan Z.", rec.User.Name)
	require.Equal(t, "Tisseur de tapis", rec.User.Bio)

	// Tokens, expiry and holding area survive the rewrite.
	require.Equal(t, before.AccessToken, rec.AccessToken)
	require.Equal(t, before.RefreshToken, rec.RefreshToken)
	require.WithinDuration(t, before.ExpiresAt, rec.ExpiresAt, 0)

	persistent, ok, err := env.creds.Holder(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, persistent)
}

func TestReplaceProfileValidatesLanguage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, _ := env.createUser(t, domain.RoleClient, "client@example.com", false)
	svc := &ProfileService{Store: env.store, Credentials: env.creds}

	_, err := svc.ReplaceProfile(ctx, user.ID, ProfileUpdate{Name: "X", Language: "en"})
	require.ErrorIs(t, err, ErrInvalidLanguage)
}

func TestReplaceProfileForOtherUserLeavesSessionAlone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createUser(t, domain.RoleClient, "signed.in@example.com", false)
	other, _ := env.createUser(t, domain.RoleClient, "other@example.com", false)
	svc := &ProfileService{Store: env.store, Credentials: env.creds}

	_, err := env.auth.SignIn(ctx, "signed.in@example.com", testPassword, false)
	require.NoError(t, err)

	_, err = svc.ReplaceProfile(ctx, other.ID, ProfileUpdate{Name: "Renamed"})
	require.NoError(t, err)

	rec, ok, err := env.creds.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "signed.in@example.com", rec.User.Email)
	require.NotEqual(t, "Renamed", rec.User.Name)
}

func TestReplaceProfileUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	svc := &ProfileService{Store: env.store, Credentials: env.creds}

	_, err := svc.ReplaceProfile(context.Background(), "01UNKNOWN", ProfileUpdate{Name: "X"})
	require.ErrorIs(t, err, ErrUserNotFound)
}
