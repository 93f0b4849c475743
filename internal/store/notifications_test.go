package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyAllIncludesEveryUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	me := s.CurrentUser(ctx)
	a := createUser(t, s, "Amina Noor", "amina")
	b := createUser(t, s, "Omar Ali", "omar")

	before := map[string]int{}
	for _, u := range []string{me.ID, a.ID, b.ID} {
		before[u] = s.UnreadCount(ctx, u)
	}

	require.NoError(t, s.NotifyAll(ctx, "maintenance tonight"))

	for _, u := range []string{me.ID, a.ID, b.ID} {
		assert.Equal(t, before[u]+1, s.UnreadCount(ctx, u), "every user, broadcaster included, gains exactly one unread")
	}
}

func TestMarkAllSeen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	me := s.CurrentUser(ctx)
	other := createUser(t, s, "Amina Noor", "amina")

	require.NoError(t, s.Notify(ctx, me.ID, "one"))
	require.NoError(t, s.Notify(ctx, me.ID, "two"))
	require.NoError(t, s.Notify(ctx, other.ID, "theirs"))

	require.Equal(t, 2, s.UnreadCount(ctx, me.ID))
	require.NoError(t, s.MarkAllSeen(ctx, me.ID))

	assert.Zero(t, s.UnreadCount(ctx, me.ID))
	assert.Equal(t, 1, s.UnreadCount(ctx, other.ID), "other users' unread state untouched")

	// Nothing is deleted, only flipped.
	assert.Len(t, s.ListNotifications(ctx, me.ID), 2)

	// Idempotent: a second pass changes nothing.
	require.NoError(t, s.MarkAllSeen(ctx, me.ID))
	assert.Zero(t, s.UnreadCount(ctx, me.ID))
}

func TestListNotificationsNewestFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, clock, _ := newTestStore(t)
	me := s.CurrentUser(ctx)

	require.NoError(t, s.Notify(ctx, me.ID, "first"))
	clock.Advance(time.Minute)
	require.NoError(t, s.Notify(ctx, me.ID, "second"))

	notifs := s.ListNotifications(ctx, me.ID)
	require.Len(t, notifs, 2)
	assert.Equal(t, "second", notifs[0].Text)
	assert.Equal(t, "first", notifs[1].Text)
}

func TestNotifyValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	assert.Error(t, s.Notify(ctx, "u_x", ""))
	assert.Error(t, s.NotifyAll(ctx, ""))
}
