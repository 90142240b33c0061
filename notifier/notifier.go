// Package notifier sends best-effort email alerts for new posts, replies
// and franchise leads. Delivery failures are logged and never propagate
// to the write path that triggered them.
package notifier

import "log"

// PostNotice carries the plaintext fields of a freshly submitted post.
type PostNotice struct {
	BoardTitle  string
	Title       string
	Content     string
	AuthorName  string
	AuthorEmail string
	AuthorPhone string
}

// ReplyNotice is sent to a post's author when an answer is first published.
type ReplyNotice struct {
	BoardTitle   string
	PostTitle    string
	ReplyContent string
	AuthorName   string
	AuthorEmail  string
}

// LeadNotice carries a new consultation lead, plaintext.
type LeadNotice struct {
	Name       string
	Phone      string
	Email      string
	Region     string
	Budget     string
	Experience string
	Path       string
	Message    string
}

type Notifier interface {
	NotifyNewPost(n PostNotice) error
	NotifyNewReply(n ReplyNotice) error
	NotifyNewLead(n LeadNotice) error
}

// Fire runs one notification in the background, catch-and-log.
func Fire(what string, fn func() error) {
	go func() {
		if err := fn(); err != nil {
			log.Printf("Notification failed (%s): %v", what, err)
		}
	}()
}

// Noop is used when no SMTP host is configured.
type Noop struct{}

func (Noop) NotifyNewPost(PostNotice) error   { return nil }
func (Noop) NotifyNewReply(ReplyNotice) error { return nil }
func (Noop) NotifyNewLead(LeadNotice) error   { return nil }
