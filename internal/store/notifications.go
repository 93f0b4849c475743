package store

import (
	"context"
	"sort"

	"sadat/internal/models"
)

// notifyLocked appends a notification without persisting; mutations that
// notify as a side effect persist once at the end. Callers hold mu.
func (s *Store) notifyLocked(recipientID, text string) {
	s.state.Notifications = append(s.state.Notifications, &models.Notification{
		ID:          s.newID("n"),
		RecipientID: recipientID,
		Text:        text,
		CreatedAt:   s.now(),
	})
}

// notifyAllLocked broadcasts to every user, the acting user included.
// Callers hold mu.
func (s *Store) notifyAllLocked(text string) {
	for _, u := range s.state.Users {
		s.notifyLocked(u.ID, text)
	}
}

// Notify appends a notification for one recipient.
func (s *Store) Notify(ctx context.Context, recipientID, text string) error {
	if text == "" {
		return models.NewValidationError("Notification text is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifyLocked(recipientID, text)
	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	s.emit(Change{Op: OpCreated, Entity: "notification", ID: recipientID})
	return nil
}

// NotifyAll broadcasts to every existing user. The broadcaster is not
// excluded; a user who posts sees their own "posted new content" entry.
func (s *Store) NotifyAll(ctx context.Context, text string) error {
	if text == "" {
		return models.NewValidationError("Notification text is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifyAllLocked(text)
	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	s.emit(Change{Op: OpCreated, Entity: "notification"})
	return nil
}

// UnreadCount returns how many of the user's notifications are unseen.
func (s *Store) UnreadCount(_ context.Context, userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.state.Notifications {
		if n.RecipientID == userID && !n.Seen {
			count++
		}
	}
	return count
}

// ListNotifications returns the user's notifications, newest first.
func (s *Store) ListNotifications(_ context.Context, userID string) []*models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []*models.Notification{}
	for _, n := range s.state.Notifications {
		if n.RecipientID == userID {
			item := *n
			out = append(out, &item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// MarkAllSeen flips every notification owned by the user to seen. There is
// no way back to unread.
func (s *Store) MarkAllSeen(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for _, n := range s.state.Notifications {
		if n.RecipientID == userID && !n.Seen {
			n.Seen = true
			changed = true
		}
	}
	if !changed {
		return nil
	}

	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	s.emit(Change{Op: OpUpdated, Entity: "notification", ID: userID})
	return nil
}
