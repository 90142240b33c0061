package models

import "time"

// Category identifies a community board tab. The values double as the
// URL path segment and the boards.category column.
type Category string

const (
	CategoryNotice  Category = "notice"
	CategoryEvent   Category = "event"
	CategoryFaq     Category = "faq"
	CategoryVoice   Category = "voice"
	CategoryInquiry Category = "inquiry"
)

// ParseCategory maps a URL tab segment to a board category.
func ParseCategory(tab string) (Category, bool) {
	switch Category(tab) {
	case CategoryNotice, CategoryEvent, CategoryFaq, CategoryVoice, CategoryInquiry:
		return Category(tab), true
	}
	return "", false
}

// Title returns the Korean display name used in page headers and mail
// subjects.
func (c Category) Title() string {
	switch c {
	case CategoryNotice:
		return "공지사항"
	case CategoryEvent:
		return "이벤트"
	case CategoryFaq:
		return "FAQ"
	case CategoryVoice:
		return "고객의소리"
	case CategoryInquiry:
		return "문의게시판"
	}
	return "커뮤니티"
}

// Private reports whether posts on this board carry customer PII and a
// password gate.
func (c Category) Private() bool {
	return c == CategoryVoice || c == CategoryInquiry
}

type Board struct {
	ID        int       `json:"id"`
	CompanyID int       `json:"company_id"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}
