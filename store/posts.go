package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eunsoo8606/texaspapa/models"
)

func (p *Postgres) ListPage(ctx context.Context, boardID, page, pageSize int) (models.PostPage, error) {
	return p.SearchPage(ctx, boardID, "", "", page, pageSize)
}

func (p *Postgres) SearchPage(ctx context.Context, boardID int, keyword, field string, page, pageSize int) (models.PostPage, error) {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	condition := ""
	args := []interface{}{boardID}
	if keyword != "" {
		pattern := "%" + keyword + "%"
		switch field {
		case "title":
			condition = " AND title LIKE $2"
			args = append(args, pattern)
		case "content":
			condition = " AND content LIKE $2"
			args = append(args, pattern)
		default:
			condition = " AND (title LIKE $2 OR content LIKE $3)"
			args = append(args, pattern, pattern)
		}
	}

	result := models.PostPage{Page: page, TotalPages: 1}

	countQuery := `SELECT COUNT(*) FROM posts WHERE board_id = $1` + condition
	if err := p.db.QueryRowContext(ctx, countQuery, args...).Scan(&result.TotalPosts); err != nil {
		return result, fmt.Errorf("count posts for board %d: %w", boardID, err)
	}
	if result.TotalPosts > 0 {
		result.TotalPages = (result.TotalPosts + pageSize - 1) / pageSize
	}

	listQuery := fmt.Sprintf(`
        SELECT post_no, title, writer, views, top_yn, create_dt
        FROM posts
        WHERE board_id = $1%s
        ORDER BY top_yn DESC, create_dt DESC
        LIMIT $%d OFFSET $%d`, condition, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := p.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return result, fmt.Errorf("list posts for board %d: %w", boardID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var post models.PostSummary
		if err := rows.Scan(&post.PostNo, &post.Title, &post.Writer, &post.Views, &post.Pinned, &post.CreatedAt); err != nil {
			return result, fmt.Errorf("scan post row: %w", err)
		}
		result.Posts = append(result.Posts, post)
	}
	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("iterate post rows: %w", err)
	}

	if result.Posts == nil {
		result.Posts = []models.PostSummary{}
	}
	return result, nil
}

func (p *Postgres) CreatePost(ctx context.Context, post *models.Post) (int, error) {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	var postNo int
	err := p.db.QueryRowContext(ctx, `
        INSERT INTO posts
            (board_id, title, content, writer, author_name, author_email, author_phone,
             password, status, top_yn, views, create_ip, create_dt)
        VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''),
                NULLIF($8, ''), $9, $10, 0, $11, NOW())
        RETURNING post_no`,
		post.BoardID, post.Title, post.Content, post.Writer,
		post.AuthorName, post.AuthorEmail, post.AuthorPhone,
		post.Password, post.Status, post.Pinned, post.CreateIP,
	).Scan(&postNo)

	if err != nil {
		return 0, fmt.Errorf("create post on board %d: %w", post.BoardID, err)
	}
	return postNo, nil
}

const postColumns = `
        post_no, board_id, title, content, writer,
        COALESCE(author_name, ''), COALESCE(author_email, ''), COALESCE(author_phone, ''),
        COALESCE(password, ''), status, top_yn, views,
        COALESCE(create_ip, ''), create_dt, update_dt`

func (p *Postgres) GetPost(ctx context.Context, postNo int) (*models.Post, error) {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	row := p.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE post_no = $1`, postNo)
	return scanPost(row, postNo)
}

func (p *Postgres) GetBoardPost(ctx context.Context, postNo, boardID int) (*models.Post, error) {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	row := p.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE post_no = $1 AND board_id = $2`, postNo, boardID)
	return scanPost(row, postNo)
}

func scanPost(row *sql.Row, postNo int) (*models.Post, error) {
	var post models.Post
	var updatedAt sql.NullTime
	err := row.Scan(
		&post.PostNo, &post.BoardID, &post.Title, &post.Content, &post.Writer,
		&post.AuthorName, &post.AuthorEmail, &post.AuthorPhone,
		&post.Password, &post.Status, &post.Pinned, &post.Views,
		&post.CreateIP, &post.CreatedAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get post %d: %w", postNo, err)
	}
	if updatedAt.Valid {
		post.UpdatedAt = &updatedAt.Time
	}
	return &post, nil
}

func (p *Postgres) IncrementViews(ctx context.Context, postNo int) error {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	_, err := p.db.ExecContext(ctx,
		`UPDATE posts SET views = views + 1 WHERE post_no = $1`, postNo)
	if err != nil {
		return fmt.Errorf("increment views for post %d: %w", postNo, err)
	}
	return nil
}

func (p *Postgres) UpdatePost(ctx context.Context, postNo, boardID int, title, content string, pinned bool, updateIP string) error {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	result, err := p.db.ExecContext(ctx, `
        UPDATE posts
        SET title = $1, content = $2, top_yn = $3, update_ip = $4, update_dt = NOW()
        WHERE post_no = $5 AND board_id = $6`,
		title, content, pinned, updateIP, postNo, boardID)
	if err != nil {
		return fmt.Errorf("update post %d: %w", postNo, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update post %d: %w", postNo, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) DeletePost(ctx context.Context, postNo, boardID int) error {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	result, err := p.db.ExecContext(ctx,
		`DELETE FROM posts WHERE post_no = $1 AND board_id = $2`, postNo, boardID)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", postNo, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post %d: %w", postNo, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
