package models

import "time"

// Reply is the administrative answer to a post. At most one live reply
// exists per post; repeat saves update it in place.
type Reply struct {
	PostNo    int        `json:"post_no"`
	Content   string     `json:"reply_content"`
	AdminID   int        `json:"admin_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type ReplyRequest struct {
	Content string `json:"reply_content" binding:"required"`
}
