package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type Claims struct {
	AdminID int `json:"admin_id"`
	jwt.RegisteredClaims
}

// Admin is a console account. Password holds the bcrypt hash and never
// leaves the process.
type Admin struct {
	ID        int        `json:"id"`
	AdminID   string     `json:"admin_id"`
	AdminName string     `json:"admin_name"`
	Password  string     `json:"-"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CompanyID int        `json:"company_id"`
	Active    bool       `json:"active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}
