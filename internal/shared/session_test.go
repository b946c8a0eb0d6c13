package shared

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*SessionManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionManager(client, time.Hour), mr
}

func TestSessionRoundTrip(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	sess, err := sm.Create(ctx, 42, "Asha", []string{"finance", "staff"})
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)

	loaded, err := sm.Load(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), loaded.UserID)
	assert.Equal(t, "Asha", loaded.Name)
	assert.True(t, loaded.HasRole("finance"))
	assert.False(t, loaded.HasRole("admin"))
}

func TestSessionLoadUnknownToken(t *testing.T) {
	sm, _ := newTestManager(t)

	_, err := sm.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = sm.Load(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSessionExpiry(t *testing.T) {
	sm, mr := newTestManager(t)
	ctx := context.Background()

	sess, err := sm.Create(ctx, 7, "Ravi", []string{"staff"})
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = sm.Load(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSessionRevoke(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	sess, err := sm.Create(ctx, 7, "Ravi", []string{"staff"})
	require.NoError(t, err)

	require.NoError(t, sm.Revoke(ctx, sess.Token))

	_, err = sm.Load(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// revoking twice is fine
	require.NoError(t, sm.Revoke(ctx, sess.Token))
}
