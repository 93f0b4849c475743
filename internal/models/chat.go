package models

import "time"

// Conversation is a direct message thread between exactly two users.
// Membership is immutable after creation and at most one conversation
// exists per unordered pair of members.
type Conversation struct {
	ID       string    `json:"id"`
	Members  []string  `json:"members"` // exactly two distinct user IDs
	Messages []Message `json:"messages"`
}

// HasMember reports whether userID is one of the two members.
func (c *Conversation) HasMember(userID string) bool {
	for _, m := range c.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// PeerOf returns the other member's ID, or "" when userID is not a member.
func (c *Conversation) PeerOf(userID string) string {
	if !c.HasMember(userID) {
		return ""
	}
	for _, m := range c.Members {
		if m != userID {
			return m
		}
	}
	return ""
}

// Message is a single entry in a conversation's ordered log.
type Message struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ConversationView augments a conversation with the resolved peer of the
// viewing user.
type ConversationView struct {
	*Conversation
	Peer *User `json:"peer"`
}
