package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eunsoo8606/texaspapa/models"
	"github.com/eunsoo8606/texaspapa/store"
)

type PopupHandler struct {
	popups store.PopupStore
}

func NewPopupHandler(popups store.PopupStore) *PopupHandler {
	return &PopupHandler{popups: popups}
}

func (h *PopupHandler) List(c *gin.Context) {
	popups, err := h.popups.ListPopups(c.Request.Context(), c.GetInt("companyID"))
	if err != nil {
		log.Printf("Error listing popups: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch popups"})
		return
	}
	c.JSON(http.StatusOK, popups)
}

func (h *PopupHandler) Create(c *gin.Context) {
	var req models.WritePopupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	popup := popupFromRequest(&req)
	popup.CompanyID = c.GetInt("companyID")

	id, err := h.popups.CreatePopup(c.Request.Context(), popup)
	if err != nil {
		log.Printf("Error creating popup: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create popup"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *PopupHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid popup id"})
		return
	}

	var req models.WritePopupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	popup := popupFromRequest(&req)
	popup.ID = id
	popup.CompanyID = c.GetInt("companyID")

	err = h.popups.UpdatePopup(c.Request.Context(), popup)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Popup not found"})
		return
	} else if err != nil {
		log.Printf("Error updating popup %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update popup"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Popup updated successfully"})
}

func (h *PopupHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid popup id"})
		return
	}

	err = h.popups.DeletePopup(c.Request.Context(), id, c.GetInt("companyID"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Popup not found"})
		return
	} else if err != nil {
		log.Printf("Error deleting popup %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete popup"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Popup deleted successfully"})
}

func (h *PopupHandler) ToggleStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid popup id"})
		return
	}

	var req models.TogglePopupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.popups.SetPopupActive(c.Request.Context(), id, c.GetInt("companyID"), req.Active)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Popup not found"})
		return
	} else if err != nil {
		log.Printf("Error toggling popup %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update popup status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func popupFromRequest(req *models.WritePopupRequest) *models.Popup {
	return &models.Popup{
		Title:     req.Title,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		LinkURL:   req.LinkURL,
		Target:    req.Target,
		Width:     req.Width,
		Height:    req.Height,
		PosTop:    req.PosTop,
		PosLeft:   req.PosLeft,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Active:    req.Active,
	}
}
