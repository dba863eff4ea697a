package domain

import (
	"errors"
	"time"
)

var ErrVideoNotFound = errors.New("video not found")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidCoinCost = errors.New("coin cost must be zero or positive")

// Video is the catalog entry for a single piece of content. CoinCost gates
// access: zero means universally free, no unlock required. The file itself is
// referenced opaquely through Filename; storing and serving bytes belongs to
// the media subsystem.
type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Filename    string    `json:"filename"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	CoinCost    int       `json:"coin_cost"`
	Duration    int       `json:"duration,omitempty"`
	Views       int64     `json:"views"`
	IsPublic    bool      `json:"is_public"`
	CreatorID   string    `json:"creator_id"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Free reports whether the video requires no unlock at all.
func (v *Video) Free() bool {
	return v.CoinCost == 0
}
