package models

import (
	"time"
)

const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

// User is the root of the ownership tree: every chat and document
// carries its owner's id.
type User struct {
	ID           string         `json:"id" db:"id"`
	Name         string         `json:"name" db:"name"`
	Email        string         `json:"email" db:"email"`
	AvatarURL    *string        `json:"avatar_url,omitempty" db:"avatar_url"`
	AuthProvider string         `json:"auth_provider" db:"auth_provider"`
	PasswordHash string         `json:"-" db:"password_hash"`
	Preferences  map[string]any `json:"preferences" db:"preferences"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	LastActive   time.Time      `json:"last_active" db:"last_active"`
}

func DefaultPreferences() map[string]any {
	return map[string]any{
		"theme":         "light",
		"language":      "en",
		"notifications": true,
	}
}

// Profile is the public shape of a user returned by auth endpoints.
type Profile struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email, AvatarURL: u.AvatarURL}
}
