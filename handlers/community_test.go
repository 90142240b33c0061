package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/gin-gonic/gin"

	"github.com/eunsoo8606/texaspapa/crypto"
	"github.com/eunsoo8606/texaspapa/handlers"
	"github.com/eunsoo8606/texaspapa/models"
	"github.com/eunsoo8606/texaspapa/notifier"
)

const testCompanyID = 2

func testCodec(t *testing.T) *crypto.Codec {
	t.Helper()
	key := make([]byte, crypto.KeySize)
	for i := range key {
		key[i] = byte(i * 3)
	}
	codec, err := crypto.NewCodec(key)
	qt.Assert(t, err, qt.IsNil)
	return codec
}

type communityFixture struct {
	boards   *fakeBoards
	posts    *fakePosts
	replies  *fakeReplies
	codec    *crypto.Codec
	notifier *recordingNotifier
	router   *gin.Engine
}

func newCommunityFixture(t *testing.T) *communityFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &communityFixture{
		boards: &fakeBoards{boards: map[models.Category]int{
			models.CategoryNotice:  1,
			models.CategoryEvent:   2,
			models.CategoryVoice:   4,
			models.CategoryInquiry: 5,
		}},
		posts:    newFakePosts(),
		codec:    testCodec(t),
		notifier: newRecordingNotifier(),
	}
	f.replies = newFakeReplies(f.posts)

	h := handlers.NewCommunityHandler(f.boards, f.posts, f.replies, f.codec, f.notifier, testCompanyID)

	f.router = gin.New()
	f.router.GET("/api/community/:tab", h.ListBoard)
	f.router.GET("/api/community/:tab/:id", h.GetPost)
	f.router.POST("/api/community/:tab", h.SubmitPost)
	f.router.POST("/api/community/:tab/:id/verify", h.VerifyPost)
	return f
}

func (f *communityFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, f.router, method, path, body)
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder) models.PostPage {
	t.Helper()
	var page models.PostPage
	qt.Assert(t, json.Unmarshal(w.Body.Bytes(), &page), qt.IsNil)
	return page
}

func TestListBoardUnknownTab(t *testing.T) {
	c := qt.New(t)
	f := newCommunityFixture(t)

	w := f.do(t, http.MethodGet, "/api/community/nonsense", nil)
	c.Assert(w.Code, qt.Equals, http.StatusNotFound)
}

func TestListBoardUnprovisionedCategory(t *testing.T) {
	c := qt.New(t)
	f := newCommunityFixture(t)

	// faq is a valid tab but this tenant never provisioned it.
	w := f.do(t, http.MethodGet, "/api/community/faq", nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)

	page := decodePage(t, w)
	c.Assert(page.Posts, qt.HasLen, 0)
	c.Assert(page.TotalPages, qt.Equals, 1)
}

func TestListBoardPinnedFirstThenNewest(t *testing.T) {
	c := qt.New(t)
	f := newCommunityFixture(t)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	old := f.posts.add(&models.Post{BoardID: 1, Title: "old", CreatedAt: base})
	pinned := f.posts.add(&models.Post{BoardID: 1, Title: "pinned old", Pinned: true, CreatedAt: base.Add(time.Hour)})
	newest := f.posts.add(&models.Post{BoardID: 1, Title: "newest", CreatedAt: base.Add(2 * time.Hour)})

	w := f.do(t, http.MethodGet, "/api/community/notice", nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)

	page := decodePage(t, w)
	c.Assert(page.Posts, qt.HasLen, 3)
	c.Assert(page.Posts[0].PostNo, qt.Equals, pinned)
	c.Assert(page.Posts[1].PostNo, qt.Equals, newest)
	c.Assert(page.Posts[2].PostNo, qt.Equals, old)
}

func TestListBoardPagination(t *testing.T) {
	c := qt.New(t)
	f := newCommunityFixture(t)

	for i := 0; i < 25; i++ {
		f.posts.add(&models.Post{BoardID: 1, Title: fmt.Sprintf("post %d", i)})
	}

	w := f.do(t, http.MethodGet, "/api/community/notice?page=3", nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	page := decodePage(t, w)
	c.Assert(page.Posts, qt.HasLen, 5)
	c.Assert(page.Page, qt.Equals, 3)
	c.Assert(page.TotalPages, qt.Equals, 3)
	c.Assert(page.TotalPosts, qt.Equals, 25)

	// A page past the end is empty, not an error.
	w = f.do(t, http.MethodGet, "/api/community/notice?page=9", nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	page = decodePage(t, w)
	c.Assert(page.Posts, qt.HasLen, 0)
	c.Assert(page.TotalPosts, qt.Equals, 25)

	// Page zero and negatives clamp to the first page.
	w = f.do(t, http.MethodGet, "/api/community/notice?page=0", nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(decodePage(t, w).Page, qt.Equals, 1)
}

func TestGetPostIncrementsViews(t *testing.T) {
	c := qt.New(t)
	f := newCommunityFixture(t)

	postNo := f.posts.add(&models.Post{BoardID: 1, Title: "notice"})

	for i := 1; i <= 3; i++ {
		w := f.do(t, http.MethodGet, fmt.Sprintf("/api/community/notice/%d", postNo), nil)
		c.Assert(w.Code, qt.Equals, http.StatusOK)

		var post models.Post
		c.Assert(json.Unmarshal(w.Body.Bytes(), &post), qt.IsNil)
		c.Assert(post.Views, qt.Equals, i)
	}
}

func TestGetPostPrivateBoardDemandsPassword(t *testing.T) {
	c := qt.New(t)
	f := newCommunityFixture(t)

	postNo := f.posts.add(&models.Post{BoardID: 5, Title: "inquiry"})

	w := f.do(t, http.MethodGet, fmt.Sprintf("/api/community/inquiry/%d", postNo), nil)
	c.Assert(w.Code, qt.Equals, http.StatusUnauthorized)

	var resp map[string]any
	c.Assert(json.Unmarshal(w.Body.Bytes(), &resp), qt.IsNil)
	c.Assert(resp["password_required"], qt.Equals, true)

	// No view was burned on the refusal.
	c.Assert(f.posts.posts[postNo].Views, qt.Equals, 0)
}

func TestSubmitPostEncryptsAndHashes(t *testing.T) {
	c := qt.New(t)
	f := newCommunityFixture(t)

	w := f.do(t, http.MethodPost, "/api/community/inquiry", map[string]string{
		"author_name":  "홍길동",
		"author_email": "hong@example.com",
		"author_phone": "010-1234-5678",
		"password":     "gate1234",
		"title":        "배송 문의",
		"content":      "주문한 상품이 아직 도착하지 않았습니다.",
	})
	c.Assert(w.Code, qt.Equals, http.StatusCreated)

	var resp map[string]int
	c.Assert(json.Unmarshal(w.Body.Bytes(), &resp), qt.IsNil)

	stored := f.posts.posts[resp["post_no"]]
	c.Assert(stored, qt.IsNotNil)
	c.Assert(stored.Status, qt.Equals, models.StatusPending)
	c.Assert(stored.BoardID, qt.Equals, 5)

	// No plaintext contact data at rest.
	c.Assert(stored.AuthorName, qt.Not(qt.Equals), "홍길동")
	c.Assert(stored.AuthorEmail, qt.Not(qt.Equals), "hong@example.com")
	c.Assert(stored.Password, qt.Not(qt.Equals), "gate1234")

	c.Assert(f.codec.Decrypt(stored.AuthorName), qt.Equals, "홍길동")
	c.Assert(f.codec.Decrypt(stored.AuthorEmail), qt.Equals, "hong@example.com")
	// Phone is stripped to digits before encryption.
	c.Assert(f.codec.Decrypt(stored.AuthorPhone), qt.Equals, "01012345678")
	c.Assert(crypto.VerifyPassword(stored.Password, "gate1234"), qt.IsTrue)

	select {
	case notice := <-f.notifier.posts:
		c.Assert(notice.AuthorName, qt.Equals, "홍길동")
		c.Assert(notice.BoardTitle, qt.Equals, "문의게시판")
	case <-time.After(time.Second):
		c.Fatal("expected a new-post notification")
	}
}

func TestSubmitPostRejectsOpenBoards(t *testing.T) {
	c := qt.New(t)
	f := newCommunityFixture(t)

	w := f.do(t, http.MethodPost, "/api/community/notice", map[string]string{
		"author_name":  "홍길동",
		"author_email": "hong@example.com",
		"author_phone": "01012345678",
		"password":     "pw",
		"title":        "t",
		"content":      "c",
	})
	c.Assert(w.Code, qt.Equals, http.StatusBadRequest)
}

func TestSubmitPostValidation(t *testing.T) {
	c := qt.New(t)
	f := newCommunityFixture(t)

	// Missing password, bad email.
	w := f.do(t, http.MethodPost, "/api/community/inquiry", map[string]string{
		"author_name":  "홍길동",
		"author_email": "not-an-email",
		"author_phone": "01012345678",
		"title":        "t",
		"content":      "c",
	})
	c.Assert(w.Code, qt.Equals, http.StatusBadRequest)
	c.Assert(f.posts.posts, qt.HasLen, 0)
}

func TestVerifyPostGateIsEnumerationResistant(t *testing.T) {
	c := qt.New(t)
	f := newCommunityFixture(t)

	hash, err := crypto.HashPassword("correct-pw")
	c.Assert(err, qt.IsNil)
	postNo := f.posts.add(&models.Post{BoardID: 5, Title: "inquiry", Password: hash})

	start := time.Now()
	wrong := f.do(t, http.MethodPost, fmt.Sprintf("/api/community/inquiry/%d/verify", postNo),
		map[string]string{"password": "wrong-pw"})
	wrongElapsed := time.Since(start)

	start = time.Now()
	missing := f.do(t, http.MethodPost, "/api/community/inquiry/99999/verify",
		map[string]string{"password": "correct-pw"})
	missingElapsed := time.Since(start)

	// Wrong password and nonexistent post are indistinguishable.
	c.Assert(wrong.Code, qt.Equals, http.StatusUnauthorized)
	c.Assert(missing.Code, qt.Equals, http.StatusUnauthorized)
	c.Assert(wrong.Body.String(), qt.Equals, missing.Body.String())

	// Both paths pay a bcrypt comparison, so the missing-post answer
	// cannot be dramatically faster than a real mismatch.
	c.Assert(missingElapsed*4 >= wrongElapsed, qt.IsTrue,
		qt.Commentf("missing-post path answered in %v vs %v for a wrong password", missingElapsed, wrongElapsed))
}

func TestVerifyPostUnlocksDecryptedDetail(t *testing.T) {
	c := qt.New(t)
	f := newCommunityFixture(t)

	hash, err := crypto.HashPassword("gate1234")
	c.Assert(err, qt.IsNil)
	name, err := f.codec.Encrypt("홍길동")
	c.Assert(err, qt.IsNil)
	email, err := f.codec.Encrypt("hong@example.com")
	c.Assert(err, qt.IsNil)
	phone, err := f.codec.Encrypt("01012345678")
	c.Assert(err, qt.IsNil)

	postNo := f.posts.add(&models.Post{
		BoardID:     5,
		Title:       "배송 문의",
		AuthorName:  name,
		AuthorEmail: email,
		AuthorPhone: phone,
		Password:    hash,
		Status:      models.StatusPending,
	})
	_, err = f.replies.UpsertReply(context.Background(), postNo, "확인 후 연락드리겠습니다.", 7)
	c.Assert(err, qt.IsNil)

	w := f.do(t, http.MethodPost, fmt.Sprintf("/api/community/inquiry/%d/verify", postNo),
		map[string]string{"password": "gate1234"})
	c.Assert(w.Code, qt.Equals, http.StatusOK)

	var detail models.PostDetail
	c.Assert(json.Unmarshal(w.Body.Bytes(), &detail), qt.IsNil)
	c.Assert(detail.AuthorName, qt.Equals, "홍길동")
	c.Assert(detail.AuthorEmail, qt.Equals, "hong@example.com")
	c.Assert(detail.AuthorPhone, qt.Equals, "010-1234-5678")
	c.Assert(detail.Reply, qt.IsNotNil)
	c.Assert(detail.Reply.Content, qt.Equals, "확인 후 연락드리겠습니다.")
}

var _ notifier.Notifier = (*recordingNotifier)(nil)
