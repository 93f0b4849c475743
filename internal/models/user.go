// Package models contains data structures for the application's domain models.
package models

import "time"

// Role determines what a user may do; admins can delete any user or post.
type Role string

// User roles.
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// DefaultAvatar is shown for users that never picked an avatar.
const DefaultAvatar = "https://via.placeholder.com/120?text=User"

// User represents a member of the local social graph.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	Role      Role      `json:"role"`
	Saved     []string  `json:"saved"` // post IDs bookmarked by this user
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// DeletedUser returns the sentinel shown when a referenced user no longer
// exists. Display-time lookups must never fail, so dangling author, sender
// and member IDs all resolve to this placeholder.
func DeletedUser(id string) *User {
	return &User{
		ID:       id,
		Name:     "(deleted)",
		Username: "deleted",
		Avatar:   DefaultAvatar,
		Role:     RoleUser,
	}
}
