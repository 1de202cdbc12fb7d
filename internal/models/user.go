package models

// UserData holds the small per-user document: display name and whether
// the first-launch flow has run.
type UserData struct {
	Name        string `json:"name"`
	FirstLaunch bool   `json:"first_launch"`
}

// NewUserData returns the default user document for a fresh install.
func NewUserData() UserData {
	return UserData{FirstLaunch: true}
}
