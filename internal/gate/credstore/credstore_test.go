package credstore

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/herfa/gate/internal/gate/domain"
	"github.com/stretchr/testify/require"
)

func testRecord(ttl time.Duration) domain.SessionRecord {
	return domain.SessionRecord{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User: domain.UserRecord{
			ID:    "01USER",
			Name:  "Test User",
			Email: "user@example.com",
			Role:  domain.RoleClient,
		},
		ExpiresAt: time.Now().Add(ttl).UTC(),
	}
}

func newTestStore() (*Store, Area, Area) {
	durable := NewMemoryArea()
	session := NewMemoryArea()
	return New(durable, session, nil), durable, session
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, durable, session := newTestStore()
	rec := testRecord(time.Hour)

	t.Run("persistent goes to the durable area", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, rec, true))

		_, err := durable.Get(ctx, SessionKey)
		require.NoError(t, err)
		_, err = session.Get(ctx, SessionKey)
		require.ErrorIs(t, err, ErrAbsent)

		got, ok, err := s.Load(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, rec.AccessToken, got.AccessToken)
		require.Equal(t, rec.User.Email, got.User.Email)
	})

	t.Run("non-persistent replaces it into the session area", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, rec, false))

		_, err := durable.Get(ctx, SessionKey)
		require.ErrorIs(t, err, ErrAbsent, "replacement must not leave a stale durable copy")
		_, err = session.Get(ctx, SessionKey)
		require.NoError(t, err)
	})
}

func TestSaveRefusesExpiredRecord(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestStore()
	err := s.Save(context.Background(), testRecord(-time.Minute), true)
	require.Error(t, err)
}

func TestSaveFingerprintsRefreshToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, durable, _ := newTestStore()
	rec := testRecord(time.Hour)
	require.NoError(t, s.Save(ctx, rec, true))

	row, err := durable.Get(ctx, SessionKey)
	require.NoError(t, err)
	require.NotEmpty(t, row.RefreshFingerprint)
	require.NotContains(t, row.RefreshFingerprint, rec.RefreshToken)
}

func TestLoadPrefersDurableArea(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, durable, session := newTestStore()

	older, err := Encode(testRecord(time.Hour))
	require.NoError(t, err)
	newer := testRecord(2 * time.Hour)
	newer.AccessToken = "newer-access-token"
	newerEncoded, err := Encode(newer)
	require.NoError(t, err)

	require.NoError(t, durable.Put(ctx, domain.CredentialRow{Key: SessionKey, Encoded: newerEncoded}))
	require.NoError(t, session.Put(ctx, domain.CredentialRow{Key: SessionKey, Encoded: older}))

	got, ok, err := s.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "newer-access-token", got.AccessToken)
}

func TestLoadDropsCorruptRow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, durable, session := newTestStore()
	require.NoError(t, durable.Put(ctx, domain.CredentialRow{
		Key:     SessionKey,
		Encoded: "g1.!!!not-base64!!!",
	}))

	_, ok, err := s.Load(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	// The undecodable row is removed, not just hidden, so it cannot keep
	// occupying an area.
	_, err = durable.Get(ctx, SessionKey)
	require.ErrorIs(t, err, ErrAbsent)
	_, err = session.Get(ctx, SessionKey)
	require.ErrorIs(t, err, ErrAbsent)

	_, ok, err = s.Holder(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestClearIsIdempotentAndCoversBothAreas(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, durable, session := newTestStore()
	require.NoError(t, s.Save(ctx, testRecord(time.Hour), true))
	require.NoError(t, s.Save(ctx, testRecord(time.Hour), false))

	require.NoError(t, s.Clear(ctx))

	_, err := durable.Get(ctx, SessionKey)
	require.ErrorIs(t, err, ErrAbsent)
	_, err = session.Get(ctx, SessionKey)
	require.ErrorIs(t, err, ErrAbsent)

	require.NoError(t, s.Clear(ctx))
}

func TestHolderReportsArea(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, _, _ := newTestStore()

	_, ok, err := s.Holder(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Save(ctx, testRecord(time.Hour), true))
	persistent, ok, err := s.Holder(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, persistent)

	require.NoError(t, s.Save(ctx, testRecord(time.Hour), false))
	persistent, ok, err = s.Holder(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, persistent)
}

func TestChangeNotifications(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	bus := evbus.New()
	s := New(NewMemoryArea(), NewMemoryArea(), bus)

	var fired atomic.Int32
	require.NoError(t, bus.Subscribe(TopicChanged, func() { fired.Add(1) }))

	require.NoError(t, s.Save(ctx, testRecord(time.Hour), false))
	require.EqualValues(t, 1, fired.Load())

	require.NoError(t, s.Clear(ctx))
	require.EqualValues(t, 2, fired.Load())

	// Clearing an already-empty store still notifies; subscribers decide
	// whether anything changed for them.
	require.NoError(t, s.Clear(ctx))
	require.EqualValues(t, 3, fired.Load())
}
