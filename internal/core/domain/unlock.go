package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrAlreadyUnlocked signals that the viewer already holds a grant for the
// video. It is a benign outcome, not a failure: the desired end state (viewer
// has access) is already true. Handlers must not surface it as an error.
var ErrAlreadyUnlocked = errors.New("video already unlocked")

// Unlock is the permanent grant created when a viewer spends coins on a
// video. Exactly one grant may exist per (viewer, video) pair; the unique
// index on that pair is the hard backstop behind concurrent purchases.
// CoinsSpent freezes the price observed at purchase time and never tracks
// later price changes. Grants are insert-only: they are removed only when the
// owning user or video is deleted.
type Unlock struct {
	ViewerID   string    `json:"viewer_id"`
	VideoID    string    `json:"video_id"`
	CoinsSpent int       `json:"coins_spent"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// InsufficientCoinsError reports a balance shortfall on an unlock attempt.
// No mutation has occurred when it is returned.
type InsufficientCoinsError struct {
	Required  int
	Available int
}

func (e *InsufficientCoinsError) Error() string {
	return fmt.Sprintf("insufficient coins: need %d, have %d", e.Required, e.Available)
}

// IsInsufficientCoins reports whether err is an InsufficientCoinsError and
// returns it when so.
func IsInsufficientCoins(err error) (*InsufficientCoinsError, bool) {
	var ice *InsufficientCoinsError
	if errors.As(err, &ice) {
		return ice, true
	}
	return nil, false
}
