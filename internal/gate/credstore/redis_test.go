package credstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/herfa/gate/internal/gate/domain"
	"github.com/stretchr/testify/require"
)

func newRedisTestArea(t *testing.T) (Area, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	area, err := NewRedisArea(RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	return area, mr
}

func TestRedisAreaRoundTrip(t *testing.T) {
	ctx := context.Background()
	area, mr := newRedisTestArea(t)

	row := domain.CredentialRow{
		Key:       SessionKey,
		Encoded:   "g1.payload",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, area.Put(ctx, row))

	got, err := area.Get(ctx, SessionKey)
	require.NoError(t, err)
	require.Equal(t, row.Encoded, got.Encoded)

	// Keys live under the prefix so a shared redis stays tidy.
	require.True(t, mr.Exists("gate:credential:"+SessionKey))

	require.NoError(t, area.Delete(ctx, SessionKey))
	_, err = area.Get(ctx, SessionKey)
	require.ErrorIs(t, err, ErrAbsent)
}

func TestRedisAreaExpiresWithRecord(t *testing.T) {
	ctx := context.Background()
	area, mr := newRedisTestArea(t)

	row := domain.CredentialRow{
		Key:       SessionKey,
		Encoded:   "g1.payload",
		ExpiresAt: time.Now().Add(time.Minute),
	}
	require.NoError(t, area.Put(ctx, row))

	// The row's own expiry becomes the redis TTL.
	mr.FastForward(2 * time.Minute)

	_, err := area.Get(ctx, SessionKey)
	require.ErrorIs(t, err, ErrAbsent)
}

func TestRedisAreaRefusesDeadRows(t *testing.T) {
	ctx := context.Background()
	area, _ := newRedisTestArea(t)

	err := area.Put(ctx, domain.CredentialRow{
		Key:       SessionKey,
		Encoded:   "g1.payload",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	require.Error(t, err)
}

func TestRedisAreaDeleteAbsentKey(t *testing.T) {
	ctx := context.Background()
	area, _ := newRedisTestArea(t)

	require.NoError(t, area.Delete(ctx, "never-written"))
}
