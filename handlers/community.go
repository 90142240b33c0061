package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eunsoo8606/texaspapa/crypto"
	"github.com/eunsoo8606/texaspapa/models"
	"github.com/eunsoo8606/texaspapa/notifier"
	"github.com/eunsoo8606/texaspapa/store"
)

// PageSize is the number of posts per listing page.
const PageSize = 10

// passwordMismatchMessage is the single answer for both "post not found"
// and "wrong password", so post numbers cannot be enumerated.
const passwordMismatchMessage = "비밀번호가 일치하지 않습니다."

// decoyHash is compared against when the post does not exist, so the
// not-found path pays the same bcrypt cost as a real mismatch and
// response timing stays uniform.
const decoyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type CommunityHandler struct {
	boards   store.BoardDirectory
	posts    store.PostStore
	replies  store.ReplyStore
	codec    *crypto.Codec
	notifier notifier.Notifier

	companyID int
}

func NewCommunityHandler(boards store.BoardDirectory, posts store.PostStore, replies store.ReplyStore,
	codec *crypto.Codec, n notifier.Notifier, companyID int) *CommunityHandler {
	return &CommunityHandler{
		boards:    boards,
		posts:     posts,
		replies:   replies,
		codec:     codec,
		notifier:  n,
		companyID: companyID,
	}
}

// ListBoard returns one page of a community board tab. A tab the tenant
// has not provisioned answers with an empty listing, not an error.
func (h *CommunityHandler) ListBoard(c *gin.Context) {
	category, ok := models.ParseCategory(c.Param("tab"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown board"})
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}

	boardID, err := h.boards.ResolveBoardID(c.Request.Context(), h.companyID, category)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusOK, models.PostPage{
			Posts: []models.PostSummary{}, Page: page, TotalPages: 1,
		})
		return
	} else if err != nil {
		log.Printf("Error resolving board %s: %v", category, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch board"})
		return
	}

	result, err := h.posts.ListPage(c.Request.Context(), boardID, page, PageSize)
	if err != nil {
		log.Printf("Error listing board %s page %d: %v", category, page, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPost serves post detail for the open boards (notice/event/faq) and
// bumps the view counter once per call. Private boards demand the
// password flow instead.
func (h *CommunityHandler) GetPost(c *gin.Context) {
	category, ok := models.ParseCategory(c.Param("tab"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown board"})
		return
	}

	if category.Private() {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":             "Password required",
			"password_required": true,
		})
		return
	}

	postNo, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post number"})
		return
	}

	boardID, err := h.boards.ResolveBoardID(c.Request.Context(), h.companyID, category)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	} else if err != nil {
		log.Printf("Error resolving board %s: %v", category, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	if err := h.posts.IncrementViews(c.Request.Context(), postNo); err != nil {
		log.Printf("Error incrementing views for post %d: %v", postNo, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	post, err := h.posts.GetBoardPost(c.Request.Context(), postNo, boardID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	} else if err != nil {
		log.Printf("Error fetching post %d: %v", postNo, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// SubmitPost accepts a public submission to the inquiry/voice boards:
// contact fields are encrypted and the access password hashed before the
// row is written. The admin alert mail never blocks the response.
func (h *CommunityHandler) SubmitPost(c *gin.Context) {
	category, ok := models.ParseCategory(c.Param("tab"))
	if !ok || !category.Private() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This board does not accept submissions"})
		return
	}

	var req models.CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	boardID, err := h.boards.ResolveBoardID(c.Request.Context(), h.companyID, category)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	} else if err != nil {
		log.Printf("Error resolving board %s: %v", category, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit post"})
		return
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing post password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit post"})
		return
	}

	encryptedName, err := h.codec.Encrypt(req.AuthorName)
	if err != nil {
		log.Printf("Error encrypting author name: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit post"})
		return
	}
	encryptedEmail, err := h.codec.Encrypt(req.AuthorEmail)
	if err != nil {
		log.Printf("Error encrypting author email: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit post"})
		return
	}
	encryptedPhone, err := h.codec.Encrypt(crypto.StripPhone(req.AuthorPhone))
	if err != nil {
		log.Printf("Error encrypting author phone: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit post"})
		return
	}

	post := &models.Post{
		BoardID:     boardID,
		Title:       req.Title,
		Content:     req.Content,
		Writer:      req.AuthorName,
		AuthorName:  encryptedName,
		AuthorEmail: encryptedEmail,
		AuthorPhone: encryptedPhone,
		Password:    passwordHash,
		Status:      models.StatusPending,
		CreateIP:    c.ClientIP(),
	}

	postNo, err := h.posts.CreatePost(c.Request.Context(), post)
	if err != nil {
		log.Printf("Error submitting post to %s: %v", category, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit post"})
		return
	}

	notice := notifier.PostNotice{
		BoardTitle:  category.Title(),
		Title:       req.Title,
		Content:     req.Content,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		AuthorPhone: req.AuthorPhone,
	}
	notifier.Fire("new post", func() error {
		return h.notifier.NotifyNewPost(notice)
	})

	c.JSON(http.StatusCreated, gin.H{"post_no": postNo})
}

// VerifyPost is the access gate for the private boards: only a correct
// password unlocks the decrypted author fields and the admin reply.
func (h *CommunityHandler) VerifyPost(c *gin.Context) {
	category, ok := models.ParseCategory(c.Param("tab"))
	if !ok || !category.Private() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This board is not password protected"})
		return
	}

	postNo, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": passwordMismatchMessage})
		return
	}

	var req models.VerifyPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	boardID, err := h.boards.ResolveBoardID(c.Request.Context(), h.companyID, category)
	if errors.Is(err, store.ErrNotFound) {
		crypto.VerifyPassword(decoyHash, req.Password)
		c.JSON(http.StatusUnauthorized, gin.H{"error": passwordMismatchMessage})
		return
	} else if err != nil {
		log.Printf("Error resolving board %s: %v", category, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify password"})
		return
	}

	post, err := h.posts.GetBoardPost(c.Request.Context(), postNo, boardID)
	if errors.Is(err, store.ErrNotFound) {
		crypto.VerifyPassword(decoyHash, req.Password)
		c.JSON(http.StatusUnauthorized, gin.H{"error": passwordMismatchMessage})
		return
	} else if err != nil {
		log.Printf("Error fetching post %d: %v", postNo, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify password"})
		return
	}

	if !crypto.VerifyPassword(post.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": passwordMismatchMessage})
		return
	}

	detail := models.PostDetail{
		Post:        *post,
		AuthorName:  h.codec.Decrypt(post.AuthorName),
		AuthorEmail: h.codec.Decrypt(post.AuthorEmail),
		AuthorPhone: crypto.FormatPhone(h.codec.Decrypt(post.AuthorPhone)),
	}

	reply, err := h.replies.LatestReply(c.Request.Context(), postNo)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("Error fetching reply for post %d: %v", postNo, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}
	detail.Reply = reply

	c.JSON(http.StatusOK, detail)
}
