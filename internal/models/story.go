package models

import "time"

// StoryTTL is the fixed lifetime of a story.
const StoryTTL = 24 * time.Hour

// Story is an ephemeral image post. Expired stories are filtered at query
// time, never actively purged.
type Story struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Active reports whether the story is still visible at the given instant.
func (s *Story) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// StoryView augments a story with its resolved author.
type StoryView struct {
	*Story
	Author *User `json:"author"`
}
