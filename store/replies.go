package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eunsoo8606/texaspapa/models"
)

func (p *Postgres) LatestReply(ctx context.Context, postNo int) (*models.Reply, error) {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	var reply models.Reply
	var updatedAt sql.NullTime
	err := p.db.QueryRowContext(ctx, `
        SELECT post_no, reply_content, admin_id, created_at, updated_at
        FROM replies
        WHERE post_no = $1
        ORDER BY created_at DESC
        LIMIT 1`, postNo,
	).Scan(&reply.PostNo, &reply.Content, &reply.AdminID, &reply.CreatedAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get reply for post %d: %w", postNo, err)
	}
	if updatedAt.Valid {
		reply.UpdatedAt = &updatedAt.Time
	}
	return &reply, nil
}

// Upsert writes the reply and the post status transition in one
// transaction, so a post never ends up answered without a reply or the
// other way round.
func (p *Postgres) UpsertReply(ctx context.Context, postNo int, content string, adminID int) (bool, error) {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("upsert reply for post %d: %w", postNo, err)
	}
	defer tx.Rollback()

	var postExists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM posts WHERE post_no = $1)`, postNo,
	).Scan(&postExists); err != nil {
		return false, fmt.Errorf("upsert reply for post %d: %w", postNo, err)
	}
	if !postExists {
		return false, ErrNotFound
	}

	var replyExists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM replies WHERE post_no = $1)`, postNo,
	).Scan(&replyExists); err != nil {
		return false, fmt.Errorf("upsert reply for post %d: %w", postNo, err)
	}

	if replyExists {
		_, err = tx.ExecContext(ctx,
			`UPDATE replies SET reply_content = $1, updated_at = NOW() WHERE post_no = $2`,
			content, postNo)
	} else {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO replies (post_no, reply_content, admin_id, created_at) VALUES ($1, $2, $3, NOW())`,
			postNo, content, adminID)
	}
	if err != nil {
		return false, fmt.Errorf("upsert reply for post %d: %w", postNo, err)
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE posts SET status = $1 WHERE post_no = $2`,
		models.StatusAnswered, postNo); err != nil {
		return false, fmt.Errorf("update status for post %d: %w", postNo, err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("upsert reply for post %d: %w", postNo, err)
	}
	return !replyExists, nil
}
