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

type FranchiseHandler struct {
	stores store.FranchiseStore
}

func NewFranchiseHandler(stores store.FranchiseStore) *FranchiseHandler {
	return &FranchiseHandler{stores: stores}
}

// ListPublic serves the store locator: active stores only.
func (h *FranchiseHandler) ListPublic(c *gin.Context) {
	stores, err := h.stores.ListActiveStores(c.Request.Context())
	if err != nil {
		log.Printf("Error listing active stores: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stores"})
		return
	}
	c.JSON(http.StatusOK, stores)
}

// List returns every store of the admin's company, active or not.
func (h *FranchiseHandler) List(c *gin.Context) {
	stores, err := h.stores.ListStores(c.Request.Context(), c.GetInt("companyID"))
	if err != nil {
		log.Printf("Error listing stores: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stores"})
		return
	}
	c.JSON(http.StatusOK, stores)
}

func (h *FranchiseHandler) Create(c *gin.Context) {
	var req models.WriteFranchiseStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	s := &models.FranchiseStore{
		CompanyID: c.GetInt("companyID"),
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		Lat:       req.Lat,
		Lng:       req.Lng,
		Active:    active,
	}

	id, err := h.stores.CreateStore(c.Request.Context(), s)
	if err != nil {
		log.Printf("Error creating store: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create store"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *FranchiseHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid store id"})
		return
	}

	var req models.WriteFranchiseStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	s := &models.FranchiseStore{
		ID:      id,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Lat:     req.Lat,
		Lng:     req.Lng,
		Active:  active,
	}

	err = h.stores.UpdateStore(c.Request.Context(), s)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	} else if err != nil {
		log.Printf("Error updating store %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update store"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Store updated successfully"})
}

func (h *FranchiseHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid store id"})
		return
	}

	err = h.stores.DeleteStore(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	} else if err != nil {
		log.Printf("Error deleting store %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete store"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Store deleted successfully"})
}
