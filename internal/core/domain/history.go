package domain

import "time"

// WatchHistory records how far a user has watched a video. One row exists per
// (user, video) pair; progress updates are idempotent upserts against that
// key, mirroring the grant uniqueness pattern but with no financial side.
type WatchHistory struct {
	UserID    string    `json:"user_id"`
	VideoID   string    `json:"video_id"`
	Progress  int       `json:"progress"`
	Completed bool      `json:"completed"`
	WatchedAt time.Time `json:"watched_at"`
}
