package seed

import (
	"context"
	"testing"

	"sadat/internal/persist"
	"sadat/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoPopulatesStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, err := store.New(ctx, persist.NewMemory())
	require.NoError(t, err)

	opts := DefaultOptions()
	require.NoError(t, Demo(ctx, s, opts))

	me := s.CurrentUser(ctx)
	stats := s.Stats(ctx)
	assert.Equal(t, opts.Users+1, stats.Users, "demo users plus the default user")
	assert.Equal(t, opts.Posts, stats.Posts)
	assert.Equal(t, opts.Stories, stats.Stories)

	assert.Len(t, s.ListFeed(ctx, me.ID), opts.Posts)
	assert.Len(t, s.ListActiveStories(ctx), opts.Stories)

	convs := s.ListConversations(ctx, me.ID)
	require.Len(t, convs, 1, "welcome conversation exists")
	require.NotEmpty(t, convs[0].Messages)
	assert.Contains(t, convs[0].Messages[0].Text, "welcome")

	assert.Zero(t, s.UnreadCount(ctx, me.ID), "seeding leaves the badge clean")
}

func TestDemoWithZeroCounts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, err := store.New(ctx, persist.NewMemory())
	require.NoError(t, err)
	require.NoError(t, Demo(ctx, s, Options{}))

	assert.Equal(t, 1, s.Stats(ctx).Users, "nothing added beyond the default user")
}
