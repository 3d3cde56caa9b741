package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/herfa/gate/internal/gate/domain"
	"github.com/herfa/gate/internal/gate/store"
	"github.com/herfa/gate/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st
}

func sampleUser(role domain.Role, email string) domain.UserRecord {
	return domain.UserRecord{
		ID:           idx.New().String(),
		Name:         "Test User",
		Email:        email,
		Role:         role,
		IsActive:     true,
		PasswordHash: "$argon2id$test",
		Language:     "ar",
	}
}

func TestUsersRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	u := sampleUser(domain.RoleAdmin, "Yassine.Mod@Example.com")
	u.Permissions = []domain.Permission{domain.PermModerateProfiles, domain.PermViewReports}
	require.NoError(t, st.Users().CreateUser(ctx, u))

	t.Run("by id", func(t *testing.T) {
		got, err := st.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, got.Role)
		require.Equal(t, u.Permissions, got.Permissions)
		require.False(t, got.CreatedAt.IsZero())
	})

	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		got, err := st.Users().GetUserByEmail(ctx, "yassine.mod@example.com")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.Equal(t, "yassine.mod@example.com", got.Email)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := st.Users().GetUserByID(ctx, "01MISSING")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup := sampleUser(domain.RoleClient, "yassine.mod@example.com")
		err := st.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})
}

func TestReplaceProfileLeavesCredentialsAlone(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	u := sampleUser(domain.RoleArtisan, "artisan@example.com")
	require.NoError(t, st.Users().CreateUser(ctx, u))
	require.NoError(t, st.Users().EnrollSecondFactor(ctx, u.ID, "JBSWY3DPEHPK3PXP"))

	u.Name = "Hassan Z."
	u.Bio = "Tisseur"
	u.GenderCode = "male"
	require.NoError(t, st.Users().ReplaceProfile(ctx, u))

	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Hassan Z.", got.Name)
	require.Equal(t, "Tisseur", got.Bio)

	// Password hash and second-factor material are untouched.
	require.Equal(t, "$argon2id$test", got.PasswordHash)
	require.NotNil(t, got.SecondFactorSecret)
	require.NotNil(t, got.SecondFactorEnabled)

	t.Run("unknown user", func(t *testing.T) {
		missing := sampleUser(domain.RoleArtisan, "missing@example.com")
		require.ErrorIs(t, st.Users().ReplaceProfile(ctx, missing), store.ErrNotFound)
	})
}

func TestSetActiveAndCounts(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	empty, err := st.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	a := sampleUser(domain.RoleClient, "a@example.com")
	b := sampleUser(domain.RoleClient, "b@example.com")
	c := sampleUser(domain.RoleSuperAdmin, "root@example.com")
	for _, u := range []domain.UserRecord{a, b, c} {
		require.NoError(t, st.Users().CreateUser(ctx, u))
	}

	require.NoError(t, st.Users().SetActive(ctx, b.ID, false))

	byRole, err := st.Users().CountByRole(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, byRole[domain.RoleClient])
	require.Equal(t, 1, byRole[domain.RoleSuperAdmin])

	active, err := st.Users().CountActive(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, active)
}

func TestGendersUpsert(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	require.NoError(t, st.Genders().UpsertGender(ctx, domain.Gender{Code: "male", LabelAr: "ذكر", LabelFr: "Homme"}))
	require.NoError(t, st.Genders().UpsertGender(ctx, domain.Gender{Code: "male", LabelAr: "ذكر", LabelFr: "Masculin"}))

	genders, err := st.Genders().ListGenders(ctx)
	require.NoError(t, err)
	require.Len(t, genders, 1)
	require.Equal(t, "Masculin", genders[0].LabelFr)
}

func TestCredentialsLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	row := domain.CredentialRow{
		Key:                "herfa.session",
		Encoded:            "g1.payload",
		RefreshFingerprint: "fp",
		ExpiresAt:          time.Now().Add(time.Hour).UTC(),
	}
	require.NoError(t, st.Credentials().PutCredential(ctx, row))

	t.Run("put replaces in place", func(t *testing.T) {
		row.Encoded = "g1.payload2"
		require.NoError(t, st.Credentials().PutCredential(ctx, row))

		got, err := st.Credentials().GetCredential(ctx, row.Key)
		require.NoError(t, err)
		require.Equal(t, "g1.payload2", got.Encoded)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, st.Credentials().DeleteCredential(ctx, row.Key))
		require.NoError(t, st.Credentials().DeleteCredential(ctx, row.Key))

		_, err := st.Credentials().GetCredential(ctx, row.Key)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("expired purge", func(t *testing.T) {
		dead := row
		dead.Key = "dead"
		dead.ExpiresAt = time.Now().Add(-time.Hour).UTC()
		live := row
		live.Key = "live"
		live.ExpiresAt = time.Now().Add(time.Hour).UTC()

		require.NoError(t, st.Credentials().PutCredential(ctx, dead))
		require.NoError(t, st.Credentials().PutCredential(ctx, live))

		require.NoError(t, st.Credentials().DeleteExpiredCredentials(ctx))

		_, err := st.Credentials().GetCredential(ctx, "dead")
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = st.Credentials().GetCredential(ctx, "live")
		require.NoError(t, err)
	})
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	u := sampleUser(domain.RoleClient, "tx@example.com")
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return context.Canceled
	})
	require.ErrorIs(t, err, context.Canceled)

	_, err = st.Users().GetUserByID(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
