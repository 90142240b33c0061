package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/gin-gonic/gin"

	"github.com/eunsoo8606/texaspapa/models"
	"github.com/eunsoo8606/texaspapa/notifier"
	"github.com/eunsoo8606/texaspapa/store"
)

// doRequest drives one JSON request through a test router.
func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		qt.Assert(t, err, qt.IsNil)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// fakeBoards resolves categories from a fixed map, standing in for the
// boards table.
type fakeBoards struct {
	boards map[models.Category]int
}

func (f *fakeBoards) ResolveBoardID(_ context.Context, _ int, category models.Category) (int, error) {
	id, ok := f.boards[category]
	if !ok {
		return 0, store.ErrNotFound
	}
	return id, nil
}

// fakePosts keeps posts in memory and mirrors the listing order of the
// real store: pinned first, then newest first.
type fakePosts struct {
	posts  map[int]*models.Post
	nextNo int
}

func newFakePosts() *fakePosts {
	return &fakePosts{posts: map[int]*models.Post{}, nextNo: 1}
}

func (f *fakePosts) add(post *models.Post) int {
	p := *post
	p.PostNo = f.nextNo
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(f.nextNo) * time.Hour)
	}
	f.posts[p.PostNo] = &p
	f.nextNo++
	return p.PostNo
}

func (f *fakePosts) boardPosts(boardID int) []*models.Post {
	var out []*models.Post
	for _, p := range f.posts {
		if p.BoardID == boardID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (f *fakePosts) ListPage(_ context.Context, boardID, page, pageSize int) (models.PostPage, error) {
	all := f.boardPosts(boardID)

	totalPages := (len(all) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(all) {
		start = len(all)
	}
	if end > len(all) {
		end = len(all)
	}

	summaries := []models.PostSummary{}
	for _, p := range all[start:end] {
		summaries = append(summaries, models.PostSummary{
			PostNo:    p.PostNo,
			Title:     p.Title,
			Writer:    p.Writer,
			Views:     p.Views,
			Pinned:    p.Pinned,
			CreatedAt: p.CreatedAt,
		})
	}

	return models.PostPage{
		Posts:      summaries,
		Page:       page,
		TotalPages: totalPages,
		TotalPosts: len(all),
	}, nil
}

func (f *fakePosts) SearchPage(ctx context.Context, boardID int, _, _ string, page, pageSize int) (models.PostPage, error) {
	return f.ListPage(ctx, boardID, page, pageSize)
}

func (f *fakePosts) CreatePost(_ context.Context, post *models.Post) (int, error) {
	return f.add(post), nil
}

func (f *fakePosts) GetPost(_ context.Context, postNo int) (*models.Post, error) {
	p, ok := f.posts[postNo]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakePosts) GetBoardPost(_ context.Context, postNo, boardID int) (*models.Post, error) {
	p, ok := f.posts[postNo]
	if !ok || p.BoardID != boardID {
		return nil, store.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakePosts) IncrementViews(_ context.Context, postNo int) error {
	if p, ok := f.posts[postNo]; ok {
		p.Views++
	}
	return nil
}

func (f *fakePosts) UpdatePost(_ context.Context, postNo, boardID int, title, content string, pinned bool, _ string) error {
	p, ok := f.posts[postNo]
	if !ok || p.BoardID != boardID {
		return store.ErrNotFound
	}
	p.Title = title
	p.Content = content
	p.Pinned = pinned
	now := time.Now()
	p.UpdatedAt = &now
	return nil
}

func (f *fakePosts) DeletePost(_ context.Context, postNo, boardID int) error {
	p, ok := f.posts[postNo]
	if !ok || p.BoardID != boardID {
		return store.ErrNotFound
	}
	delete(f.posts, postNo)
	return nil
}

// fakeReplies mirrors the one-reply-per-post upsert, including the status
// transition on the owning post.
type fakeReplies struct {
	posts   *fakePosts
	replies map[int]*models.Reply
}

func newFakeReplies(posts *fakePosts) *fakeReplies {
	return &fakeReplies{posts: posts, replies: map[int]*models.Reply{}}
}

func (f *fakeReplies) LatestReply(_ context.Context, postNo int) (*models.Reply, error) {
	r, ok := f.replies[postNo]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReplies) UpsertReply(_ context.Context, postNo int, content string, adminID int) (bool, error) {
	post, ok := f.posts.posts[postNo]
	if !ok {
		return false, store.ErrNotFound
	}

	_, exists := f.replies[postNo]
	f.replies[postNo] = &models.Reply{
		PostNo:    postNo,
		Content:   content,
		AdminID:   adminID,
		CreatedAt: time.Now(),
	}
	post.Status = models.StatusAnswered
	return !exists, nil
}

// recordingNotifier collects notices on a channel so tests can wait for
// the background send.
type recordingNotifier struct {
	posts   chan notifier.PostNotice
	replies chan notifier.ReplyNotice
	leads   chan notifier.LeadNotice
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{
		posts:   make(chan notifier.PostNotice, 8),
		replies: make(chan notifier.ReplyNotice, 8),
		leads:   make(chan notifier.LeadNotice, 8),
	}
}

func (r *recordingNotifier) NotifyNewPost(n notifier.PostNotice) error {
	r.posts <- n
	return nil
}

func (r *recordingNotifier) NotifyNewReply(n notifier.ReplyNotice) error {
	r.replies <- n
	return nil
}

func (r *recordingNotifier) NotifyNewLead(n notifier.LeadNotice) error {
	r.leads <- n
	return nil
}
