package models

import "time"

// Popup is a promotional popup record managed from the console.
type Popup struct {
	ID        int        `json:"id"`
	CompanyID int        `json:"company_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	ImageURL  string     `json:"image_url"`
	LinkURL   string     `json:"link_url"`
	Target    string     `json:"target"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	PosTop    int        `json:"pos_top"`
	PosLeft   int        `json:"pos_left"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
}

type WritePopupRequest struct {
	Title     string     `json:"title" binding:"required"`
	Content   string     `json:"content"`
	ImageURL  string     `json:"image_url"`
	LinkURL   string     `json:"link_url"`
	Target    string     `json:"target"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	PosTop    int        `json:"pos_top"`
	PosLeft   int        `json:"pos_left"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Active    bool       `json:"active"`
}

type TogglePopupRequest struct {
	Active bool `json:"active"`
}
