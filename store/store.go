// Package store holds the persistence layer: one interface per entity
// and a shared Postgres implementation backed by database/sql.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/eunsoo8606/texaspapa/models"
)

// ErrNotFound is returned when a board, post or other row does not exist
// for the given key. Callers decide whether that is an error or a
// legitimate empty outcome.
var ErrNotFound = errors.New("not found")

type BoardDirectory interface {
	// ResolveBoardID returns the board for a (company, category) pair.
	// ErrNotFound means the tenant has not provisioned that category.
	ResolveBoardID(ctx context.Context, companyID int, category models.Category) (int, error)
}

type PostStore interface {
	// ListPage returns one page ordered pinned-first, then newest-first.
	// Pages past the end come back empty, not as an error.
	ListPage(ctx context.Context, boardID, page, pageSize int) (models.PostPage, error)
	// SearchPage is ListPage with a keyword filter over title, content or
	// both ("title", "content", anything else means both).
	SearchPage(ctx context.Context, boardID int, keyword, field string, page, pageSize int) (models.PostPage, error)
	CreatePost(ctx context.Context, post *models.Post) (int, error)
	GetPost(ctx context.Context, postNo int) (*models.Post, error)
	// GetBoardPost is GetPost scoped to one board, for console routes.
	GetBoardPost(ctx context.Context, postNo, boardID int) (*models.Post, error)
	IncrementViews(ctx context.Context, postNo int) error
	UpdatePost(ctx context.Context, postNo, boardID int, title, content string, pinned bool, updateIP string) error
	DeletePost(ctx context.Context, postNo, boardID int) error
}

type ReplyStore interface {
	// LatestReply returns the current reply for a post, or ErrNotFound.
	LatestReply(ctx context.Context, postNo int) (*models.Reply, error)
	// UpsertReply inserts or updates the reply and moves the post status
	// to answered in the same transaction. created reports whether this
	// call wrote the first reply for the post.
	UpsertReply(ctx context.Context, postNo int, content string, adminID int) (created bool, err error)
}

type ConsultationStore interface {
	CreateConsultation(ctx context.Context, lead *models.Consultation) (int, error)
	ListConsultations(ctx context.Context) ([]models.Consultation, error)
	UpdateConsultationStatus(ctx context.Context, id int, status string) error
}

type FranchiseStore interface {
	ListActiveStores(ctx context.Context) ([]models.FranchiseStore, error)
	ListStores(ctx context.Context, companyID int) ([]models.FranchiseStore, error)
	GetStore(ctx context.Context, id int) (*models.FranchiseStore, error)
	CreateStore(ctx context.Context, s *models.FranchiseStore) (int, error)
	UpdateStore(ctx context.Context, s *models.FranchiseStore) error
	DeleteStore(ctx context.Context, id int) error
}

type PopupStore interface {
	ListPopups(ctx context.Context, companyID int) ([]models.Popup, error)
	GetPopup(ctx context.Context, id, companyID int) (*models.Popup, error)
	CreatePopup(ctx context.Context, p *models.Popup) (int, error)
	UpdatePopup(ctx context.Context, p *models.Popup) error
	DeletePopup(ctx context.Context, id, companyID int) error
	SetPopupActive(ctx context.Context, id, companyID int, active bool) error
}

// Postgres implements every store interface over one connection pool.
type Postgres struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgres(db *sql.DB, queryTimeout time.Duration) *Postgres {
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	return &Postgres{db: db, timeout: queryTimeout}
}

func (p *Postgres) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, p.timeout)
}
