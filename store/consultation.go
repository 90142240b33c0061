package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eunsoo8606/texaspapa/models"
)

func (p *Postgres) CreateConsultation(ctx context.Context, lead *models.Consultation) (int, error) {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	var id int
	err := p.db.QueryRowContext(ctx, `
        INSERT INTO consultation
            (name, phone, email, region, budget, experience, path, message, status, create_ip, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'pending', $9, NOW())
        RETURNING consultation_id`,
		lead.Name, lead.Phone, lead.Email, lead.Region, lead.Budget,
		lead.Experience, lead.Path, lead.Message, lead.CreateIP,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("create consultation: %w", err)
	}
	return id, nil
}

func (p *Postgres) ListConsultations(ctx context.Context) ([]models.Consultation, error) {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	rows, err := p.db.QueryContext(ctx, `
        SELECT consultation_id, name, phone, COALESCE(email, ''),
               COALESCE(region, ''), COALESCE(budget, ''), COALESCE(experience, ''),
               COALESCE(path, ''), COALESCE(message, ''), status,
               COALESCE(create_ip, ''), created_at, updated_at
        FROM consultation
        ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list consultations: %w", err)
	}
	defer rows.Close()

	leads := []models.Consultation{}
	for rows.Next() {
		var lead models.Consultation
		var updatedAt sql.NullTime
		err := rows.Scan(
			&lead.ID, &lead.Name, &lead.Phone, &lead.Email,
			&lead.Region, &lead.Budget, &lead.Experience,
			&lead.Path, &lead.Message, &lead.Status,
			&lead.CreateIP, &lead.CreatedAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan consultation row: %w", err)
		}
		if updatedAt.Valid {
			lead.UpdatedAt = &updatedAt.Time
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate consultation rows: %w", err)
	}
	return leads, nil
}

func (p *Postgres) UpdateConsultationStatus(ctx context.Context, id int, status string) error {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	result, err := p.db.ExecContext(ctx,
		`UPDATE consultation SET status = $1, updated_at = NOW() WHERE consultation_id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("update consultation %d status: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update consultation %d status: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
