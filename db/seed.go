package db

import (
	"database/sql"
	"fmt"

	"github.com/eunsoo8606/texaspapa/crypto"
	"github.com/eunsoo8606/texaspapa/models"
)

// SeedData provisions the five community boards for the company and a
// default console account when none exists yet.
func SeedData(db *sql.DB, companyID int) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	categories := []models.Category{
		models.CategoryNotice,
		models.CategoryEvent,
		models.CategoryFaq,
		models.CategoryVoice,
		models.CategoryInquiry,
	}
	for _, category := range categories {
		_, err = tx.Exec(
			`INSERT INTO boards (company_id, category) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			companyID, category)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error seeding boards: %w", err)
		}
	}

	var adminCount int
	if err = tx.QueryRow(`SELECT COUNT(*) FROM admins`).Scan(&adminCount); err != nil {
		tx.Rollback()
		return fmt.Errorf("error counting admins: %w", err)
	}

	if adminCount == 0 {
		passwordHash, err := crypto.HashPassword("admin123")
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error hashing default admin password: %w", err)
		}
		_, err = tx.Exec(
			`INSERT INTO admins (admin_id, admin_name, password, name, email, role, company_id, is_active)
             VALUES ($1, $2, $3, $4, $5, 'super_admin', $6, TRUE)`,
			"admin", "admin", passwordHash, "관리자", "admin@texaspapa.co.kr", companyID)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error seeding default admin: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}
