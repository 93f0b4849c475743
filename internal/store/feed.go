package store

import (
	"context"
	"sort"
	"strings"

	"sadat/internal/models"
)

// PublishPostInput carries a new post. At least one of Text and Image must
// be set; Image is an already-resolved opaque blob reference.
type PublishPostInput struct {
	AuthorID string
	Text     string
	Image    string
}

// PublishPost appends a post to the feed and notifies every user that new
// content was posted.
func (s *Store) PublishPost(ctx context.Context, in PublishPostInput) (*models.Post, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" && in.Image == "" {
		return nil, models.NewValidationError("Write something or attach an image")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	author := s.userByID(in.AuthorID)
	if author == nil {
		return nil, models.NewNotFoundError("User", in.AuthorID)
	}

	post := &models.Post{
		ID:        s.newID("p"),
		AuthorID:  author.ID,
		Text:      text,
		Image:     in.Image,
		CreatedAt: s.now(),
		Likes:     []string{},
		Comments:  []models.Comment{},
		Reactions: map[string]int{},
	}
	s.state.Posts = append(s.state.Posts, post)
	s.notifyAllLocked(author.Name + " posted new content")

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	s.log.LogMutation(ctx, "publish_post", map[string]interface{}{"post_id": post.ID, "author_id": author.ID})
	s.emit(Change{Op: OpCreated, Entity: "post", ID: post.ID})
	out := *post
	return &out, nil
}

// feedLess orders posts newest first, tie-broken by ID so the order is
// reproducible.
func feedLess(a, b *models.Post) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// postViewLocked derives the display projection for one post. Callers hold mu.
func (s *Store) postViewLocked(p *models.Post, viewerID string) *models.PostView {
	tally := make([]models.ReactionCount, 0, len(p.Reactions))
	for symbol, count := range p.Reactions {
		tally = append(tally, models.ReactionCount{Symbol: symbol, Count: count})
	}
	sort.Slice(tally, func(i, j int) bool { return tally[i].Symbol < tally[j].Symbol })

	return &models.PostView{
		Post:          p,
		Author:        s.resolveUser(p.AuthorID),
		UserLiked:     p.LikedBy(viewerID),
		LikeCount:     len(p.Likes),
		CommentCount:  len(p.Comments),
		ReactionTally: tally,
	}
}

// ListFeed returns every post ordered newest first, projected for viewerID.
func (s *Store) ListFeed(_ context.Context, viewerID string) []*models.PostView {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := make([]*models.Post, len(s.state.Posts))
	copy(posts, s.state.Posts)
	sort.SliceStable(posts, func(i, j int) bool { return feedLess(posts[i], posts[j]) })

	out := make([]*models.PostView, 0, len(posts))
	for _, p := range posts {
		out = append(out, s.postViewLocked(p, viewerID))
	}
	return out
}

// GetPost returns the projected post or NotFound.
func (s *Store) GetPost(_ context.Context, postID, viewerID string) (*models.PostView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := s.postByID(postID)
	if post == nil {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return s.postViewLocked(post, viewerID), nil
}

// ToggleLike flips userID's membership in the post's like set. The add
// transition notifies the post author; the remove transition does not.
// Two toggles return the set to its prior state.
func (s *Store) ToggleLike(ctx context.Context, postID, userID string) (*models.PostView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := s.postByID(postID)
	if post == nil {
		return nil, models.NewNotFoundError("Post", postID)
	}

	if post.LikedBy(userID) {
		likes := post.Likes[:0]
		for _, id := range post.Likes {
			if id != userID {
				likes = append(likes, id)
			}
		}
		post.Likes = likes
	} else {
		post.Likes = append(post.Likes, userID)
		actor := s.resolveUser(userID)
		s.notifyLocked(post.AuthorID, actor.Name+" liked your post")
	}

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	s.emit(Change{Op: OpUpdated, Entity: "post", ID: postID})
	return s.postViewLocked(post, userID), nil
}

// AddComment appends a comment to the post's log, snapshotting the author's
// name at creation time, and notifies the post author.
func (s *Store) AddComment(ctx context.Context, postID, authorID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("Write a comment")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post := s.postByID(postID)
	if post == nil {
		return nil, models.NewNotFoundError("Post", postID)
	}

	author := s.resolveUser(authorID)
	comment := models.Comment{
		ID:         s.newID("c"),
		AuthorID:   authorID,
		AuthorName: author.Name,
		Text:       text,
		CreatedAt:  s.now(),
	}
	post.Comments = append(post.Comments, comment)
	s.notifyLocked(post.AuthorID, author.Name+" commented on your post")

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	s.log.LogMutation(ctx, "add_comment", map[string]interface{}{"post_id": postID, "comment_id": comment.ID})
	s.emit(Change{Op: OpUpdated, Entity: "post", ID: postID})
	return &comment, nil
}

// AddReaction increments the post's tally for the given symbol. Symbols are
// an open set and there is no per-user dedup; every call counts.
func (s *Store) AddReaction(ctx context.Context, postID, symbol string) (*models.PostView, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, models.NewValidationError("Reaction symbol is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post := s.postByID(postID)
	if post == nil {
		return nil, models.NewNotFoundError("Post", postID)
	}
	if post.Reactions == nil {
		post.Reactions = map[string]int{}
	}
	post.Reactions[symbol]++

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	s.emit(Change{Op: OpUpdated, Entity: "post", ID: postID})
	return s.postViewLocked(post, s.state.CurrentUserID), nil
}

// CanDeletePost is the explicit authorization check the presentation layer
// calls before DeletePost: post owners and admins may delete.
func (s *Store) CanDeletePost(_ context.Context, actorID, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := s.postByID(postID)
	if post == nil {
		return models.NewNotFoundError("Post", postID)
	}
	actor := s.userByID(actorID)
	if post.AuthorID == actorID || actor.IsAdmin() {
		return nil
	}
	return models.NewUnauthorizedError("You can only delete your own posts")
}

// DeletePost removes the post unconditionally. Authorization is the
// caller's concern; see CanDeletePost.
func (s *Store) DeletePost(ctx context.Context, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.postByID(postID) == nil {
		return models.NewNotFoundError("Post", postID)
	}
	posts := s.state.Posts[:0]
	for _, p := range s.state.Posts {
		if p.ID != postID {
			posts = append(posts, p)
		}
	}
	s.state.Posts = posts

	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	s.log.LogMutation(ctx, "delete_post", map[string]interface{}{"post_id": postID})
	s.emit(Change{Op: OpDeleted, Entity: "post", ID: postID})
	return nil
}

// SavePost bookmarks a post for the user. Saving twice is a no-op.
func (s *Store) SavePost(ctx context.Context, userID, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.userByID(userID)
	if user == nil {
		return models.NewNotFoundError("User", userID)
	}
	if s.postByID(postID) == nil {
		return models.NewNotFoundError("Post", postID)
	}
	for _, id := range user.Saved {
		if id == postID {
			return nil
		}
	}
	user.Saved = append(user.Saved, postID)

	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	s.emit(Change{Op: OpUpdated, Entity: "user", ID: userID})
	return nil
}

// ListSaved returns the user's bookmarked posts in feed order. Saved IDs
// whose post has since been deleted are skipped.
func (s *Store) ListSaved(_ context.Context, userID string) []*models.PostView {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []*models.PostView{}
	user := s.userByID(userID)
	if user == nil {
		return out
	}
	for _, id := range user.Saved {
		if p := s.postByID(id); p != nil {
			out = append(out, s.postViewLocked(p, userID))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return feedLess(out[i].Post, out[j].Post) })
	return out
}
