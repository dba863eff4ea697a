package domain

import (
	"errors"
	"time"
)

var ErrCommentNotFound = errors.New("comment not found")

// Comment is a single comment on a video. Replies reference their parent
// through ParentID; top-level comments have an empty ParentID.
type Comment struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	ParentID  string    `json:"parent_id,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
