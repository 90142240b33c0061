package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eunsoo8606/texaspapa/models"
)

const franchiseColumns = `id, company_id, name, address, COALESCE(phone, ''),
        COALESCE(lat, 0), COALESCE(lng, 0), use_yn`

func (p *Postgres) ListActiveStores(ctx context.Context) ([]models.FranchiseStore, error) {
	return p.listStores(ctx,
		`SELECT `+franchiseColumns+` FROM stores WHERE use_yn = TRUE ORDER BY id DESC`)
}

func (p *Postgres) ListStores(ctx context.Context, companyID int) ([]models.FranchiseStore, error) {
	return p.listStores(ctx,
		`SELECT `+franchiseColumns+` FROM stores WHERE company_id = $1 ORDER BY id DESC`, companyID)
}

func (p *Postgres) listStores(ctx context.Context, query string, args ...interface{}) ([]models.FranchiseStore, error) {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	stores := []models.FranchiseStore{}
	for rows.Next() {
		var s models.FranchiseStore
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.Address, &s.Phone, &s.Lat, &s.Lng, &s.Active); err != nil {
			return nil, fmt.Errorf("scan store row: %w", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate store rows: %w", err)
	}
	return stores, nil
}

func (p *Postgres) GetStore(ctx context.Context, id int) (*models.FranchiseStore, error) {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	var s models.FranchiseStore
	err := p.db.QueryRowContext(ctx,
		`SELECT `+franchiseColumns+` FROM stores WHERE id = $1`, id,
	).Scan(&s.ID, &s.CompanyID, &s.Name, &s.Address, &s.Phone, &s.Lat, &s.Lng, &s.Active)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get store %d: %w", id, err)
	}
	return &s, nil
}

func (p *Postgres) CreateStore(ctx context.Context, s *models.FranchiseStore) (int, error) {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	var id int
	err := p.db.QueryRowContext(ctx, `
        INSERT INTO stores (company_id, name, address, phone, lat, lng, use_yn)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id`,
		s.CompanyID, s.Name, s.Address, s.Phone, s.Lat, s.Lng, s.Active,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("create store: %w", err)
	}
	return id, nil
}

func (p *Postgres) UpdateStore(ctx context.Context, s *models.FranchiseStore) error {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	result, err := p.db.ExecContext(ctx, `
        UPDATE stores
        SET name = $1, address = $2, phone = $3, lat = $4, lng = $5, use_yn = $6
        WHERE id = $7`,
		s.Name, s.Address, s.Phone, s.Lat, s.Lng, s.Active, s.ID)
	if err != nil {
		return fmt.Errorf("update store %d: %w", s.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update store %d: %w", s.ID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) DeleteStore(ctx context.Context, id int) error {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	result, err := p.db.ExecContext(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete store %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete store %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
