package models

import "time"

// Consultation is a franchise-inquiry lead. Name, phone and email are
// stored encrypted; business fields stay plain.
type Consultation struct {
	ID         int        `json:"consultation_id"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
	Region     string     `json:"region"`
	Budget     string     `json:"budget"`
	Experience string     `json:"experience"`
	Path       string     `json:"path"`
	Message    string     `json:"message"`
	Status     string     `json:"status"`
	CreateIP   string     `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

type CreateConsultationRequest struct {
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Email      string `json:"email"`
	Region     string `json:"region"`
	Budget     string `json:"budget"`
	Experience string `json:"experience"`
	Path       string `json:"path"`
	Message    string `json:"message"`
}

type UpdateConsultationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
