package models

import "time"

// Post represents a feed post.
//
// Likes is a set of user IDs, Reactions a tally keyed by reaction symbol.
// Comments are append-only.
type Post struct {
	ID        string         `json:"id"`
	AuthorID  string         `json:"author_id"`
	Text      string         `json:"text"`
	Image     string         `json:"image,omitempty"` // opaque blob reference (data URI or URL)
	CreatedAt time.Time      `json:"created_at"`
	Likes     []string       `json:"likes"`
	Comments  []Comment      `json:"comments"`
	Reactions map[string]int `json:"reactions"`
}

// LikedBy reports whether userID is in the post's like set.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Comment is a single comment on a post. AuthorName is a snapshot captured
// at creation time, not live-joined against the user collection.
type Comment struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReactionCount is one entry of a post's reaction tally.
type ReactionCount struct {
	Symbol string `json:"symbol"`
	Count  int    `json:"count"`
}

// PostView augments a raw post with fields derived at query time.
type PostView struct {
	*Post
	Author        *User           `json:"author"`
	UserLiked     bool            `json:"user_liked"`
	LikeCount     int             `json:"like_count"`
	CommentCount  int             `json:"comment_count"`
	ReactionTally []ReactionCount `json:"reaction_tally"`
}
