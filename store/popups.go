package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eunsoo8606/texaspapa/models"
)

const popupColumns = `id, company_id, title, COALESCE(content, ''), COALESCE(image_url, ''),
        COALESCE(link_url, ''), COALESCE(target, ''), width, height, pos_top, pos_left,
        start_date, end_date, is_active, created_at`

func (p *Postgres) ListPopups(ctx context.Context, companyID int) ([]models.Popup, error) {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	rows, err := p.db.QueryContext(ctx,
		`SELECT `+popupColumns+` FROM popups WHERE company_id = $1 ORDER BY created_at DESC`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("list popups: %w", err)
	}
	defer rows.Close()

	popups := []models.Popup{}
	for rows.Next() {
		popup, err := scanPopup(rows)
		if err != nil {
			return nil, err
		}
		popups = append(popups, *popup)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate popup rows: %w", err)
	}
	return popups, nil
}

func (p *Postgres) GetPopup(ctx context.Context, id, companyID int) (*models.Popup, error) {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	rows, err := p.db.QueryContext(ctx,
		`SELECT `+popupColumns+` FROM popups WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return nil, fmt.Errorf("get popup %d: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get popup %d: %w", id, err)
		}
		return nil, ErrNotFound
	}
	return scanPopup(rows)
}

func scanPopup(rows *sql.Rows) (*models.Popup, error) {
	var popup models.Popup
	var start, end sql.NullTime
	err := rows.Scan(
		&popup.ID, &popup.CompanyID, &popup.Title, &popup.Content, &popup.ImageURL,
		&popup.LinkURL, &popup.Target, &popup.Width, &popup.Height, &popup.PosTop, &popup.PosLeft,
		&start, &end, &popup.Active, &popup.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan popup row: %w", err)
	}
	if start.Valid {
		popup.StartDate = &start.Time
	}
	if end.Valid {
		popup.EndDate = &end.Time
	}
	return &popup, nil
}

func (p *Postgres) CreatePopup(ctx context.Context, popup *models.Popup) (int, error) {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	width, height := popup.Width, popup.Height
	if width == 0 {
		width = 400
	}
	if height == 0 {
		height = 500
	}
	posTop, posLeft := popup.PosTop, popup.PosLeft
	if posTop == 0 {
		posTop = 100
	}
	if posLeft == 0 {
		posLeft = 100
	}

	var id int
	err := p.db.QueryRowContext(ctx, `
        INSERT INTO popups
            (company_id, title, content, image_url, link_url, target,
             width, height, pos_top, pos_left, start_date, end_date, is_active, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
        RETURNING id`,
		popup.CompanyID, popup.Title, popup.Content, popup.ImageURL, popup.LinkURL, popup.Target,
		width, height, posTop, posLeft, popup.StartDate, popup.EndDate, popup.Active,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("create popup: %w", err)
	}
	return id, nil
}

func (p *Postgres) UpdatePopup(ctx context.Context, popup *models.Popup) error {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	result, err := p.db.ExecContext(ctx, `
        UPDATE popups SET
            title = $1, content = $2, image_url = $3, link_url = $4, target = $5,
            width = $6, height = $7, pos_top = $8, pos_left = $9,
            start_date = $10, end_date = $11, is_active = $12
        WHERE id = $13 AND company_id = $14`,
		popup.Title, popup.Content, popup.ImageURL, popup.LinkURL, popup.Target,
		popup.Width, popup.Height, popup.PosTop, popup.PosLeft,
		popup.StartDate, popup.EndDate, popup.Active,
		popup.ID, popup.CompanyID)
	if err != nil {
		return fmt.Errorf("update popup %d: %w", popup.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update popup %d: %w", popup.ID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) DeletePopup(ctx context.Context, id, companyID int) error {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	result, err := p.db.ExecContext(ctx,
		`DELETE FROM popups WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete popup %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete popup %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) SetPopupActive(ctx context.Context, id, companyID int, active bool) error {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	result, err := p.db.ExecContext(ctx,
		`UPDATE popups SET is_active = $1 WHERE id = $2 AND company_id = $3`,
		active, id, companyID)
	if err != nil {
		return fmt.Errorf("set popup %d active: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set popup %d active: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
