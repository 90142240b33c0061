package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eunsoo8606/texaspapa/models"
)

func (p *Postgres) ResolveBoardID(ctx context.Context, companyID int, category models.Category) (int, error) {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	var boardID int
	err := p.db.QueryRowContext(ctx,
		`SELECT id FROM boards WHERE company_id = $1 AND category = $2 LIMIT 1`,
		companyID, category,
	).Scan(&boardID)

	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	} else if err != nil {
		return 0, fmt.Errorf("resolve board %d/%s: %w", companyID, category, err)
	}
	return boardID, nil
}
