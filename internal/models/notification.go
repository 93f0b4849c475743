package models

import "time"

// Notification is one entry of a user's append-only event log.
type Notification struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipient_id"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
	Seen        bool      `json:"seen"`
}
