package handlers

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eunsoo8606/texaspapa/crypto"
	"github.com/eunsoo8606/texaspapa/models"
	"github.com/eunsoo8606/texaspapa/notifier"
	"github.com/eunsoo8606/texaspapa/store"
)

var phonePattern = regexp.MustCompile(`^[0-9-]+$`)

type ConsultationHandler struct {
	leads    store.ConsultationStore
	codec    *crypto.Codec
	notifier notifier.Notifier
}

func NewConsultationHandler(leads store.ConsultationStore, codec *crypto.Codec, n notifier.Notifier) *ConsultationHandler {
	return &ConsultationHandler{leads: leads, codec: codec, notifier: n}
}

// Create takes a public franchise-consultation lead. Name, phone and
// email are encrypted before storage; the admin alert is fire-and-forget.
func (h *ConsultationHandler) Create(c *gin.Context) {
	var req models.CreateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !phonePattern.MatchString(req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "올바른 전화번호 형식이 아닙니다."})
		return
	}

	encryptedName, err := h.codec.Encrypt(req.Name)
	if err != nil {
		log.Printf("Error encrypting lead name: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit consultation"})
		return
	}
	encryptedPhone, err := h.codec.Encrypt(crypto.StripPhone(req.Phone))
	if err != nil {
		log.Printf("Error encrypting lead phone: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit consultation"})
		return
	}
	encryptedEmail, err := h.codec.Encrypt(req.Email)
	if err != nil {
		log.Printf("Error encrypting lead email: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit consultation"})
		return
	}

	lead := &models.Consultation{
		Name:       encryptedName,
		Phone:      encryptedPhone,
		Email:      encryptedEmail,
		Region:     req.Region,
		Budget:     req.Budget,
		Experience: req.Experience,
		Path:       req.Path,
		Message:    req.Message,
		CreateIP:   c.ClientIP(),
	}

	if _, err := h.leads.CreateConsultation(c.Request.Context(), lead); err != nil {
		log.Printf("Error creating consultation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit consultation"})
		return
	}

	notice := notifier.LeadNotice{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Region:     req.Region,
		Budget:     req.Budget,
		Experience: req.Experience,
		Path:       req.Path,
		Message:    req.Message,
	}
	notifier.Fire("new lead", func() error {
		return h.notifier.NotifyNewLead(notice)
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "상담 신청이 완료되었습니다. 빠른 시일 내에 연락드리겠습니다.",
	})
}

// List returns all leads for the console with PII decrypted and the
// phone number put back into display form.
func (h *ConsultationHandler) List(c *gin.Context) {
	leads, err := h.leads.ListConsultations(c.Request.Context())
	if err != nil {
		log.Printf("Error listing consultations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch consultations"})
		return
	}

	for i := range leads {
		leads[i].Name = h.codec.Decrypt(leads[i].Name)
		leads[i].Email = h.codec.Decrypt(leads[i].Email)
		leads[i].Phone = crypto.FormatPhone(h.codec.Decrypt(leads[i].Phone))
	}

	c.JSON(http.StatusOK, leads)
}

func (h *ConsultationHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid consultation id"})
		return
	}

	var req models.UpdateConsultationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.leads.UpdateConsultationStatus(c.Request.Context(), id, req.Status)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Consultation not found"})
		return
	} else if err != nil {
		log.Printf("Error updating consultation %d status: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
