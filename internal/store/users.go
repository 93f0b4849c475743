package store

import (
	"context"
	"sort"
	"strings"

	"sadat/internal/models"
)

// CreateUserInput carries the profile fields for a new user.
type CreateUserInput struct {
	Name     string
	Username string
	Bio      string
	Avatar   string
	Role     models.Role
}

// UpdateProfileInput carries a partial profile update. Empty fields are
// left unchanged.
type UpdateProfileInput struct {
	Name     string
	Username string
	Bio      string
	Avatar   string
}

// StatsView summarizes collection sizes for the sidebar.
type StatsView struct {
	Users   int `json:"users"`
	Posts   int `json:"posts"`
	Stories int `json:"stories"`
}

// CreateUser adds a user with a fresh ID. The first user ever created
// becomes the current user. Usernames must be unique at creation time.
func (s *Store) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Name is required")
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, models.NewValidationError("Username is required")
	}
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userByUsername(username) != nil {
		return nil, models.NewValidationError("Username is already taken")
	}

	user := &models.User{
		ID:        s.newID("u"),
		Name:      strings.TrimSpace(in.Name),
		Username:  username,
		Bio:       in.Bio,
		Avatar:    in.Avatar,
		Role:      role,
		Saved:     []string{},
		CreatedAt: s.now(),
	}
	s.state.Users = append(s.state.Users, user)
	if s.state.CurrentUserID == "" {
		s.state.CurrentUserID = user.ID
	}

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	s.log.LogMutation(ctx, "create_user", map[string]interface{}{"user_id": user.ID, "username": user.Username})
	s.emit(Change{Op: OpCreated, Entity: "user", ID: user.ID})
	out := *user
	return &out, nil
}

// GetUser resolves a user for display. It never fails: unknown IDs return
// the deleted-user sentinel.
func (s *Store) GetUser(_ context.Context, id string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveUser(id)
}

// CurrentUser returns the designated local user.
func (s *Store) CurrentUser(_ context.Context) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveUser(s.state.CurrentUserID)
}

// ListUsers returns every user, current user included, in creation order.
func (s *Store) ListUsers(_ context.Context) []*models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.User, 0, len(s.state.Users))
	for _, u := range s.state.Users {
		out = append(out, s.resolveUser(u.ID))
	}
	return out
}

// UpdateProfile applies a partial update to name, username, bio and avatar.
// Username uniqueness is deliberately not re-checked on edit; callers rely
// on it for quick renames.
func (s *Store) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.userByID(userID)
	if user == nil {
		return nil, models.NewNotFoundError("User", userID)
	}

	if in.Name != "" {
		user.Name = strings.TrimSpace(in.Name)
	}
	if in.Username != "" {
		user.Username = strings.TrimSpace(in.Username)
	}
	if in.Bio != "" {
		user.Bio = in.Bio
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	s.log.LogMutation(ctx, "update_profile", map[string]interface{}{"user_id": userID})
	s.emit(Change{Op: OpUpdated, Entity: "user", ID: userID})
	out := *user
	return &out, nil
}

// DeleteUser removes a user and cascades to delete every post they
// authored. Conversations, messages and notifications that reference the
// ID stay put and degrade to the sentinel at display time. The current
// user cannot be deleted, which keeps the current-user pointer valid.
func (s *Store) DeleteUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if userID == s.state.CurrentUserID {
		return models.NewValidationError("Cannot delete the current user")
	}
	if s.userByID(userID) == nil {
		return models.NewNotFoundError("User", userID)
	}

	users := s.state.Users[:0]
	for _, u := range s.state.Users {
		if u.ID != userID {
			users = append(users, u)
		}
	}
	s.state.Users = users

	posts := s.state.Posts[:0]
	for _, p := range s.state.Posts {
		if p.AuthorID != userID {
			posts = append(posts, p)
		}
	}
	s.state.Posts = posts

	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	s.log.LogMutation(ctx, "delete_user", map[string]interface{}{"user_id": userID})
	s.emit(Change{Op: OpDeleted, Entity: "user", ID: userID})
	return nil
}

// Follow resolves peerUsername and notifies that user that selfID started
// following them. There is no persisted follow graph; a follow is a
// one-shot notification.
func (s *Store) Follow(ctx context.Context, selfID, peerUsername string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	peer := s.userByUsername(peerUsername)
	if peer == nil {
		return models.NewNotFoundError("User", peerUsername)
	}
	actor := s.resolveUser(selfID)
	s.notifyLocked(peer.ID, actor.Name+" started following you")

	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	s.emit(Change{Op: OpCreated, Entity: "notification", ID: peer.ID})
	return nil
}

// Stats returns collection counts. Story count includes expired stories;
// only visibility filters on expiry.
func (s *Store) Stats(_ context.Context) StatsView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return StatsView{
		Users:   len(s.state.Users),
		Posts:   len(s.state.Posts),
		Stories: len(s.state.Stories),
	}
}

// SearchResult groups the two halves of a search.
type SearchResult struct {
	Users []*models.User     `json:"users"`
	Posts []*models.PostView `json:"posts"`
}

// Search runs a case-insensitive substring match. Users match on the
// concatenation of name, username and bio; posts match on their text or
// their author's name. An empty query returns an empty result; the view
// decides what to fall back to.
func (s *Store) Search(_ context.Context, query string) SearchResult {
	result := SearchResult{Users: []*models.User{}, Posts: []*models.PostView{}}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return result
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.state.Users {
		haystack := strings.ToLower(u.Name + " " + u.Username + " " + u.Bio)
		if strings.Contains(haystack, q) {
			result.Users = append(result.Users, s.resolveUser(u.ID))
		}
	}
	for _, p := range s.state.Posts {
		author := s.resolveUser(p.AuthorID)
		if strings.Contains(strings.ToLower(p.Text), q) ||
			strings.Contains(strings.ToLower(author.Name), q) {
			result.Posts = append(result.Posts, s.postViewLocked(p, s.state.CurrentUserID))
		}
	}
	sort.SliceStable(result.Posts, func(i, j int) bool {
		return feedLess(result.Posts[i].Post, result.Posts[j].Post)
	})
	return result
}
