package models

// Theme values for Settings.Theme.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Settings holds user preferences that persist with the store.
type Settings struct {
	Theme string `json:"theme"`
}

// State is the whole-store aggregate: every entity collection plus the
// designated current user. It is what the persistence adapter serializes
// as a single snapshot.
type State struct {
	CurrentUserID string          `json:"current_user_id"`
	Users         []*User         `json:"users"`
	Posts         []*Post         `json:"posts"`
	Conversations []*Conversation `json:"conversations"`
	Stories       []*Story        `json:"stories"`
	Notifications []*Notification `json:"notifications"`
	Settings      Settings        `json:"settings"`
}

// NewState returns an empty state with the given theme.
func NewState(theme string) *State {
	if theme == "" {
		theme = ThemeLight
	}
	return &State{
		Users:         []*User{},
		Posts:         []*Post{},
		Conversations: []*Conversation{},
		Stories:       []*Story{},
		Notifications: []*Notification{},
		Settings:      Settings{Theme: theme},
	}
}
