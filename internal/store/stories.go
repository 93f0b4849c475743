package store

import (
	"context"
	"sort"

	"sadat/internal/models"
)

// CreateStory publishes an ephemeral image that expires after a fixed
// 24-hour window.
func (s *Store) CreateStory(ctx context.Context, authorID, image string) (*models.Story, error) {
	if image == "" {
		return nil, models.NewValidationError("Story image is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	author := s.userByID(authorID)
	if author == nil {
		return nil, models.NewNotFoundError("User", authorID)
	}

	now := s.now()
	story := &models.Story{
		ID:        s.newID("s"),
		AuthorID:  author.ID,
		Image:     image,
		CreatedAt: now,
		ExpiresAt: now.Add(models.StoryTTL),
	}
	s.state.Stories = append(s.state.Stories, story)

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	s.log.LogMutation(ctx, "create_story", map[string]interface{}{"story_id": story.ID, "author_id": author.ID})
	s.emit(Change{Op: OpCreated, Entity: "story", ID: story.ID})
	out := *story
	return &out, nil
}

// ListActiveStories filters out expired stories at query time, newest
// first. Expired stories stay in storage; nothing evicts them.
func (s *Store) ListActiveStories(_ context.Context) []*models.StoryView {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := []*models.StoryView{}
	for _, story := range s.state.Stories {
		if !story.Active(now) {
			continue
		}
		out = append(out, &models.StoryView{
			Story:  story,
			Author: s.resolveUser(story.AuthorID),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
