package store

import (
	"context"
	"testing"
	"time"

	"sadat/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("assigns fresh id and default role", func(t *testing.T) {
		t.Parallel()
		s, _, _ := newTestStore(t)
		u := createUser(t, s, "Amina Noor", "amina")
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, models.RoleUser, u.Role)
		assert.NotEqual(t, s.CurrentUser(ctx).ID, u.ID, "default admin stays current")
	})

	t.Run("rejects missing name or username", func(t *testing.T) {
		t.Parallel()
		s, _, _ := newTestStore(t)
		_, err := s.CreateUser(ctx, CreateUserInput{Username: "ghost"})
		assert.Error(t, err)
		_, err = s.CreateUser(ctx, CreateUserInput{Name: "Ghost"})
		assert.Error(t, err)
	})

	t.Run("rejects duplicate username on create", func(t *testing.T) {
		t.Parallel()
		s, _, _ := newTestStore(t)
		createUser(t, s, "Amina Noor", "amina")
		_, err := s.CreateUser(ctx, CreateUserInput{Name: "Impostor", Username: "amina"})
		require.Error(t, err)
		appErr := err.(*models.AppError)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

func TestGetUserNeverFails(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	u := s.GetUser(ctx, "u_does_not_exist")
	require.NotNil(t, u)
	assert.Equal(t, "(deleted)", u.Name)
	assert.Equal(t, "deleted", u.Username)
	assert.Equal(t, models.DefaultAvatar, u.Avatar)
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		t.Parallel()
		s, _, _ := newTestStore(t)
		u := createUser(t, s, "Amina Noor", "amina")
		_, err := s.UpdateProfile(ctx, u.ID, UpdateProfileInput{Bio: "Designer"})
		require.NoError(t, err)

		got := s.GetUser(ctx, u.ID)
		assert.Equal(t, "Amina Noor", got.Name)
		assert.Equal(t, "amina", got.Username)
		assert.Equal(t, "Designer", got.Bio)
	})

	t.Run("duplicate username on edit is silently allowed", func(t *testing.T) {
		t.Parallel()
		s, _, _ := newTestStore(t)
		a := createUser(t, s, "Amina Noor", "amina")
		createUser(t, s, "Omar Ali", "omar")

		_, err := s.UpdateProfile(ctx, a.ID, UpdateProfileInput{Username: "omar"})
		require.NoError(t, err)
		assert.Equal(t, "omar", s.GetUser(ctx, a.ID).Username)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		t.Parallel()
		s, _, _ := newTestStore(t)
		_, err := s.UpdateProfile(ctx, "u_nope", UpdateProfileInput{Name: "X"})
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", err.(*models.AppError).Code)
	})
}

func TestDeleteUserCascades(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	me := s.CurrentUser(ctx)
	victim := createUser(t, s, "Omar Ali", "omar")

	_, err := s.PublishPost(ctx, PublishPostInput{AuthorID: victim.ID, Text: "omar's post"})
	require.NoError(t, err)
	keep, err := s.PublishPost(ctx, PublishPostInput{AuthorID: me.ID, Text: "mine"})
	require.NoError(t, err)

	conv, err := s.FindOrCreateConversation(ctx, me.ID, "omar")
	require.NoError(t, err)
	_, err = s.SendMessage(ctx, conv.ID, victim.ID, "hello")
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(ctx, victim.ID))

	// Cascade: the victim's posts are gone, other posts survive.
	feed := s.ListFeed(ctx, me.ID)
	require.Len(t, feed, 1)
	assert.Equal(t, keep.ID, feed[0].ID)

	// No cascade into conversations: the thread survives and the peer
	// degrades to the placeholder.
	convs := s.ListConversations(ctx, me.ID)
	require.Len(t, convs, 1)
	assert.Equal(t, "(deleted)", convs[0].Peer.Name)
	require.Len(t, convs[0].Messages, 1)
}

func TestDeleteUserGuards(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	err := s.DeleteUser(ctx, s.CurrentUser(ctx).ID)
	require.Error(t, err, "current user must stay resolvable")

	err = s.DeleteUser(ctx, "u_nope")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", err.(*models.AppError).Code)
}

func TestFollow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	me := s.CurrentUser(ctx)
	peer := createUser(t, s, "Amina Noor", "amina")

	require.NoError(t, s.Follow(ctx, me.ID, "amina"))
	notifs := s.ListNotifications(ctx, peer.ID)
	require.Len(t, notifs, 1)
	assert.Contains(t, notifs[0].Text, "started following you")

	err := s.Follow(ctx, me.ID, "nobody")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", err.(*models.AppError).Code)
}

func TestSearch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	amina := createUser(t, s, "Amina Noor", "amina")
	omar := createUser(t, s, "Omar Ali", "omar")
	_, err := s.UpdateProfile(ctx, omar.ID, UpdateProfileInput{Bio: "Frontend dev"})
	require.NoError(t, err)

	_, err = s.PublishPost(ctx, PublishPostInput{AuthorID: amina.ID, Text: "Hello from Amina!"})
	require.NoError(t, err)
	_, err = s.PublishPost(ctx, PublishPostInput{AuthorID: omar.ID, Text: "trying the demo"})
	require.NoError(t, err)

	t.Run("matches users on name, username and bio", func(t *testing.T) {
		res := s.Search(ctx, "frontend")
		require.Len(t, res.Users, 1)
		assert.Equal(t, omar.ID, res.Users[0].ID)
	})

	t.Run("matches posts on text or author name", func(t *testing.T) {
		res := s.Search(ctx, "amina")
		assert.Len(t, res.Posts, 1, "matched via author name and text")
		res = s.Search(ctx, "demo")
		assert.Len(t, res.Posts, 1)
	})

	t.Run("is case-insensitive", func(t *testing.T) {
		res := s.Search(ctx, "AMINA")
		assert.NotEmpty(t, res.Users)
	})

	t.Run("empty query returns empty result", func(t *testing.T) {
		res := s.Search(ctx, "   ")
		assert.Empty(t, res.Users)
		assert.Empty(t, res.Posts)
	})
}

func TestStats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, clock, _ := newTestStore(t)

	me := s.CurrentUser(ctx)
	createUser(t, s, "Amina Noor", "amina")
	_, err := s.PublishPost(ctx, PublishPostInput{AuthorID: me.ID, Text: "post"})
	require.NoError(t, err)
	_, err = s.CreateStory(ctx, me.ID, "img")
	require.NoError(t, err)

	clock.Advance(48 * time.Hour)

	// Expired stories still count: they are stored, just not visible.
	assert.Equal(t, StatsView{Users: 2, Posts: 1, Stories: 1}, s.Stats(ctx))
	assert.Empty(t, s.ListActiveStories(ctx))
}
