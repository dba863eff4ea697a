package domain

import (
	"errors"
	"time"
)

const (
	RoleCreator = "creator"
	RoleViewer  = "viewer"
)

// DefaultStartingCoins is the coin grant new viewer accounts receive.
const DefaultStartingCoins = 20

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrChannelNotFound = errors.New("channel not found")

// User models an authenticated principal. Creators own videos and a channel
// profile; viewers carry a coin balance spent on unlocks. Coins are only ever
// mutated by the unlock purchase path.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Coins        int       `json:"coins"`
	CreatedAt    time.Time `json:"created_at"`
	LastLogin    time.Time `json:"last_login,omitempty"`

	// Channel profile, populated for creators only.
	ChannelName    string `json:"channel_name,omitempty"`
	Category       string `json:"category,omitempty"`
	Bio            string `json:"bio,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// IsValidRole reports whether role is one of the two supported roles.
func IsValidRole(role string) bool {
	return role == RoleCreator || role == RoleViewer
}
