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

// BoardAdminHandler manages board content from the console. The board is
// always resolved against the authenticated admin's company, so one
// tenant cannot touch another tenant's posts.
type BoardAdminHandler struct {
	boards   store.BoardDirectory
	posts    store.PostStore
	replies  store.ReplyStore
	codec    *crypto.Codec
	notifier notifier.Notifier
}

func NewBoardAdminHandler(boards store.BoardDirectory, posts store.PostStore, replies store.ReplyStore,
	codec *crypto.Codec, n notifier.Notifier) *BoardAdminHandler {
	return &BoardAdminHandler{
		boards:   boards,
		posts:    posts,
		replies:  replies,
		codec:    codec,
		notifier: n,
	}
}

func (h *BoardAdminHandler) resolveBoard(c *gin.Context) (models.Category, int, bool) {
	category, ok := models.ParseCategory(c.Param("tab"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown board"})
		return "", 0, false
	}

	companyID := c.GetInt("companyID")
	boardID, err := h.boards.ResolveBoardID(c.Request.Context(), companyID, category)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return "", 0, false
	} else if err != nil {
		log.Printf("Error resolving board %s: %v", category, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve board"})
		return "", 0, false
	}
	return category, boardID, true
}

// ListPosts lists one board page with optional keyword search
// (searchType: title, content, or all).
func (h *BoardAdminHandler) ListPosts(c *gin.Context) {
	_, boardID, ok := h.resolveBoard(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	search := c.Query("search")
	searchType := c.Query("searchType")

	result, err := h.posts.SearchPage(c.Request.Context(), boardID, search, searchType, page, PageSize)
	if err != nil {
		log.Printf("Error listing board %d: %v", boardID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreatePost writes an announcement-style post. The writer is the admin's
// display name; no author contact fields or password are involved.
func (h *BoardAdminHandler) CreatePost(c *gin.Context) {
	_, boardID, ok := h.resolveBoard(c)
	if !ok {
		return
	}

	var req models.AdminWritePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := &models.Post{
		BoardID:  boardID,
		Title:    req.Title,
		Content:  req.Content,
		Writer:   c.GetString("adminName"),
		Status:   models.StatusPublished,
		Pinned:   req.Pinned,
		CreateIP: c.ClientIP(),
	}

	postNo, err := h.posts.CreatePost(c.Request.Context(), post)
	if err != nil {
		log.Printf("Error creating post on board %d: %v", boardID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post_no": postNo})
}

// GetPost returns the full post for the console, decrypted author fields
// and reply included for the private boards.
func (h *BoardAdminHandler) GetPost(c *gin.Context) {
	category, boardID, ok := h.resolveBoard(c)
	if !ok {
		return
	}

	postNo, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post number"})
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

	detail := models.PostDetail{Post: *post}
	if category.Private() {
		detail.AuthorName = h.codec.Decrypt(post.AuthorName)
		detail.AuthorEmail = h.codec.Decrypt(post.AuthorEmail)
		detail.AuthorPhone = crypto.FormatPhone(h.codec.Decrypt(post.AuthorPhone))

		reply, err := h.replies.LatestReply(c.Request.Context(), postNo)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Printf("Error fetching reply for post %d: %v", postNo, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
			return
		}
		detail.Reply = reply
	}

	c.JSON(http.StatusOK, detail)
}

// UpdatePost edits title, content and the pin flag, stamping the update
// time and actor IP.
func (h *BoardAdminHandler) UpdatePost(c *gin.Context) {
	_, boardID, ok := h.resolveBoard(c)
	if !ok {
		return
	}

	postNo, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post number"})
		return
	}

	var req models.AdminWritePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.posts.UpdatePost(c.Request.Context(), postNo, boardID, req.Title, req.Content, req.Pinned, c.ClientIP())
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	} else if err != nil {
		log.Printf("Error updating post %d: %v", postNo, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post updated successfully"})
}

// DeletePost hard-deletes a post; replies go with it via the schema.
func (h *BoardAdminHandler) DeletePost(c *gin.Context) {
	_, boardID, ok := h.resolveBoard(c)
	if !ok {
		return
	}

	postNo, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post number"})
		return
	}

	err = h.posts.DeletePost(c.Request.Context(), postNo, boardID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	} else if err != nil {
		log.Printf("Error deleting post %d: %v", postNo, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// SaveReply upserts the answer for a post. Only the first creation mails
// the post author; later edits stay quiet.
func (h *BoardAdminHandler) SaveReply(c *gin.Context) {
	category, boardID, ok := h.resolveBoard(c)
	if !ok {
		return
	}

	postNo, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post number"})
		return
	}

	var req models.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Confirm the post belongs to this admin's board before writing.
	post, err := h.posts.GetBoardPost(c.Request.Context(), postNo, boardID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	} else if err != nil {
		log.Printf("Error fetching post %d: %v", postNo, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save reply"})
		return
	}

	created, err := h.replies.UpsertReply(c.Request.Context(), postNo, req.Content, c.GetInt("adminID"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	} else if err != nil {
		log.Printf("Error saving reply for post %d: %v", postNo, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save reply"})
		return
	}

	if created && category.Private() {
		notice := notifier.ReplyNotice{
			BoardTitle:   category.Title(),
			PostTitle:    post.Title,
			ReplyContent: req.Content,
			AuthorName:   h.codec.Decrypt(post.AuthorName),
			AuthorEmail:  h.codec.Decrypt(post.AuthorEmail),
		}
		notifier.Fire("new reply", func() error {
			return h.notifier.NotifyNewReply(notice)
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reply saved successfully",
		"created": created,
	})
}
