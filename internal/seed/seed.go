// Package seed populates a fresh store with demo content so the app is
// not empty on first launch. Development and demos only.
package seed

import (
	"context"
	"fmt"
	"strings"

	"sadat/internal/store"

	"github.com/brianvoe/gofakeit/v6"
)

// Options controls how much demo content is generated.
type Options struct {
	Users   int
	Posts   int
	Stories int
}

// DefaultOptions matches the built-in demo data set.
func DefaultOptions() Options {
	return Options{Users: 2, Posts: 3, Stories: 1}
}

// Demo fills the store with generated users, posts, a welcome conversation
// and a story. It is idempotent in spirit, not in fact: calling it twice
// doubles the content, so callers should only seed a freshly initialized
// store.
func Demo(ctx context.Context, s *store.Store, opts Options) error {
	me := s.CurrentUser(ctx)

	users, err := createUsers(ctx, s, opts.Users)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	if err := createPosts(ctx, s, users, opts.Posts); err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}

	for i := 0; i < opts.Stories && i < len(users); i++ {
		image := fmt.Sprintf("https://picsum.photos/seed/%s/400/700", gofakeit.UUID())
		if _, err := s.CreateStory(ctx, users[i].ID, image); err != nil {
			return fmt.Errorf("seed story: %w", err)
		}
	}

	if len(users) > 0 {
		conv, err := s.FindOrCreateConversation(ctx, users[0].ID, me.Username)
		if err != nil {
			return fmt.Errorf("seed conversation: %w", err)
		}
		welcome := fmt.Sprintf("Hey %s, welcome aboard!", me.Name)
		if _, err := s.SendMessage(ctx, conv.ID, users[0].ID, welcome); err != nil {
			return fmt.Errorf("seed message: %w", err)
		}
	}

	// Seeding floods the current user's inbox with broadcast entries;
	// start them with a clean badge.
	if err := s.MarkAllSeen(ctx, me.ID); err != nil {
		return fmt.Errorf("seed mark seen: %w", err)
	}
	return nil
}

func createUsers(ctx context.Context, s *store.Store, count int) ([]*storeUser, error) {
	users := make([]*storeUser, 0, count)
	for i := 0; i < count; i++ {
		name := gofakeit.Name()
		username := strings.ToLower(gofakeit.Username()) + fmt.Sprint(gofakeit.Number(10, 99))
		u, err := s.CreateUser(ctx, store.CreateUserInput{
			Name:     name,
			Username: username,
			Bio:      gofakeit.Sentence(8),
			Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
		})
		if err != nil {
			return nil, err
		}
		users = append(users, &storeUser{ID: u.ID, Username: u.Username})
	}
	return users, nil
}

// storeUser carries just what the later seeding steps need.
type storeUser struct {
	ID       string
	Username string
}

func createPosts(ctx context.Context, s *store.Store, users []*storeUser, count int) error {
	if len(users) == 0 {
		return nil
	}
	for i := 0; i < count; i++ {
		author := users[i%len(users)]
		in := store.PublishPostInput{
			AuthorID: author.ID,
			Text:     gofakeit.Paragraph(1, 2, 6, " "),
		}
		if gofakeit.Bool() {
			in.Image = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		}
		post, err := s.PublishPost(ctx, in)
		if err != nil {
			return err
		}

		// A little engagement so the feed does not look dead.
		for _, u := range users {
			if u.ID == author.ID {
				continue
			}
			if gofakeit.Bool() {
				if _, err := s.ToggleLike(ctx, post.ID, u.ID); err != nil {
					return err
				}
			}
		}
		if gofakeit.Bool() {
			commenter := users[(i+1)%len(users)]
			if _, err := s.AddComment(ctx, post.ID, commenter.ID, gofakeit.Sentence(6)); err != nil {
				return err
			}
		}
	}
	return nil
}
