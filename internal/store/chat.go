package store

import (
	"context"
	"strings"

	"sadat/internal/models"
)

// conversationByMembers finds the conversation whose member set equals
// {a, b}, order ignored. Callers hold mu.
func (s *Store) conversationByMembers(a, b string) *models.Conversation {
	for _, c := range s.state.Conversations {
		if c.HasMember(a) && c.HasMember(b) {
			return c
		}
	}
	return nil
}

// conversationByID returns the live conversation record or nil. Callers hold mu.
func (s *Store) conversationByID(id string) *models.Conversation {
	for _, c := range s.state.Conversations {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// FindOrCreateConversation resolves peerUsername and returns the one
// conversation between selfID and that peer, creating it on first contact.
// At most one conversation exists per unordered member pair.
func (s *Store) FindOrCreateConversation(ctx context.Context, selfID, peerUsername string) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userByID(selfID) == nil {
		return nil, models.NewNotFoundError("User", selfID)
	}
	peer := s.userByUsername(peerUsername)
	if peer == nil {
		return nil, models.NewNotFoundError("User", peerUsername)
	}
	if peer.ID == selfID {
		return nil, models.NewValidationError("Cannot start a conversation with yourself")
	}

	if conv := s.conversationByMembers(selfID, peer.ID); conv != nil {
		out := *conv
		return &out, nil
	}

	conv := &models.Conversation{
		ID:       s.newID("v"),
		Members:  []string{selfID, peer.ID},
		Messages: []models.Message{},
	}
	s.state.Conversations = append(s.state.Conversations, conv)

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	s.log.LogMutation(ctx, "create_conversation", map[string]interface{}{"conversation_id": conv.ID})
	s.emit(Change{Op: OpCreated, Entity: "conversation", ID: conv.ID})
	out := *conv
	return &out, nil
}

// SendMessage appends to the conversation's ordered log and notifies the
// other member.
func (s *Store) SendMessage(ctx context.Context, conversationID, senderID, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("Message text is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.conversationByID(conversationID)
	if conv == nil {
		return nil, models.NewNotFoundError("Conversation", conversationID)
	}
	if !conv.HasMember(senderID) {
		return nil, models.NewUnauthorizedError("Sender is not a member of this conversation")
	}

	msg := models.Message{
		ID:        s.newID("m"),
		SenderID:  senderID,
		Text:      text,
		CreatedAt: s.now(),
	}
	conv.Messages = append(conv.Messages, msg)

	sender := s.resolveUser(senderID)
	s.notifyLocked(conv.PeerOf(senderID), sender.Name+" sent you a message")

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	s.log.LogMutation(ctx, "send_message", map[string]interface{}{"conversation_id": conversationID, "message_id": msg.ID})
	s.emit(Change{Op: OpUpdated, Entity: "conversation", ID: conversationID})
	return &msg, nil
}

// GetConversation returns the conversation projected for the viewing user.
func (s *Store) GetConversation(_ context.Context, conversationID, viewerID string) (*models.ConversationView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.conversationByID(conversationID)
	if conv == nil {
		return nil, models.NewNotFoundError("Conversation", conversationID)
	}
	return &models.ConversationView{
		Conversation: conv,
		Peer:         s.resolveUser(conv.PeerOf(viewerID)),
	}, nil
}

// ListConversations returns every conversation that includes userID, each
// with the peer resolved for display. Peers that were deleted show the
// sentinel rather than breaking the list.
func (s *Store) ListConversations(_ context.Context, userID string) []*models.ConversationView {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []*models.ConversationView{}
	for _, c := range s.state.Conversations {
		if !c.HasMember(userID) {
			continue
		}
		out = append(out, &models.ConversationView{
			Conversation: c,
			Peer:         s.resolveUser(c.PeerOf(userID)),
		})
	}
	return out
}
