package models

import "time"

// PostStatus is the workflow state of a board post.
type PostStatus string

const (
	StatusPending   PostStatus = "pending"
	StatusAnswered  PostStatus = "answered"
	StatusPublished PostStatus = "published"
)

// Post is one full board entry as stored. Author contact fields hold
// encrypted tokens for private boards and are empty otherwise.
type Post struct {
	PostNo      int        `json:"post_no"`
	BoardID     int        `json:"board_id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Writer      string     `json:"writer"`
	AuthorName  string     `json:"-"`
	AuthorEmail string     `json:"-"`
	AuthorPhone string     `json:"-"`
	Password    string     `json:"-"`
	Status      PostStatus `json:"status"`
	Pinned      bool       `json:"pinned"`
	Views       int        `json:"views"`
	CreateIP    string     `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// PostSummary is one list row.
type PostSummary struct {
	PostNo    int       `json:"post_no"`
	Title     string    `json:"title"`
	Writer    string    `json:"writer"`
	Views     int       `json:"views"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateInquiryRequest is the public submission to inquiry/voice boards.
type CreateInquiryRequest struct {
	AuthorName  string `json:"author_name" binding:"required"`
	AuthorEmail string `json:"author_email" binding:"required,email"`
	AuthorPhone string `json:"author_phone" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content" binding:"required"`
}

// VerifyPostRequest carries the access password for a gated post.
type VerifyPostRequest struct {
	Password string `json:"password" binding:"required"`
}

// AdminWritePostRequest creates or edits a post on behalf of an admin.
type AdminWritePostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Pinned  bool   `json:"pinned"`
}

// PostDetail is the unlocked view of a gated post: decrypted author
// fields plus the latest reply, if any.
type PostDetail struct {
	Post        Post   `json:"post"`
	AuthorName  string `json:"author_name,omitempty"`
	AuthorEmail string `json:"author_email,omitempty"`
	AuthorPhone string `json:"author_phone,omitempty"`
	Reply       *Reply `json:"reply,omitempty"`
}

// PostPage is one listing page with pagination totals.
type PostPage struct {
	Posts      []PostSummary `json:"posts"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	TotalPosts int           `json:"total_posts"`
}
