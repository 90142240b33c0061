package db

import (
	"database/sql"
	"fmt"
)

const Schema = `
-- Create boards table (one board per company and category tab)
CREATE TABLE IF NOT EXISTS boards (
    id SERIAL PRIMARY KEY,
    company_id INTEGER NOT NULL,
    category VARCHAR(50) NOT NULL,
    UNIQUE(company_id, category)
);

-- Create posts table
CREATE TABLE IF NOT EXISTS posts (
    post_no SERIAL PRIMARY KEY,
    board_id INTEGER NOT NULL,
    title VARCHAR(255) NOT NULL,
    content TEXT NOT NULL,
    writer VARCHAR(100) NOT NULL,
    author_name TEXT,
    author_email TEXT,
    author_phone TEXT,
    password VARCHAR(255),
    status VARCHAR(50) NOT NULL DEFAULT 'published',
    top_yn BOOLEAN NOT NULL DEFAULT FALSE,
    views INTEGER NOT NULL DEFAULT 0,
    create_ip VARCHAR(64),
    create_dt TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    update_ip VARCHAR(64),
    update_dt TIMESTAMPTZ,
    FOREIGN KEY (board_id) REFERENCES boards(id) ON DELETE CASCADE
);

-- Create replies table (one live reply per post, maintained by upsert)
CREATE TABLE IF NOT EXISTS replies (
    post_no INTEGER NOT NULL,
    reply_content TEXT NOT NULL,
    admin_id INTEGER NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ,
    FOREIGN KEY (post_no) REFERENCES posts(post_no) ON DELETE CASCADE
);

-- Create consultation table (franchise leads, PII columns encrypted)
CREATE TABLE IF NOT EXISTS consultation (
    consultation_id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    phone TEXT NOT NULL,
    email TEXT,
    region VARCHAR(100),
    budget VARCHAR(100),
    experience VARCHAR(100),
    path VARCHAR(100),
    message TEXT,
    status VARCHAR(50) NOT NULL DEFAULT 'pending',
    create_ip VARCHAR(64),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ
);

-- Create admins table
CREATE TABLE IF NOT EXISTS admins (
    id SERIAL PRIMARY KEY,
    admin_id VARCHAR(100) UNIQUE NOT NULL,
    admin_name VARCHAR(100) NOT NULL,
    password VARCHAR(255) NOT NULL,
    name VARCHAR(100),
    email VARCHAR(255),
    role VARCHAR(50) NOT NULL DEFAULT 'admin',
    company_id INTEGER NOT NULL DEFAULT 2,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    last_login TIMESTAMPTZ
);

-- Create refresh_tokens table
CREATE TABLE IF NOT EXISTS refresh_tokens (
    id SERIAL PRIMARY KEY,
    admin_id INTEGER NOT NULL,
    token VARCHAR(255) UNIQUE NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    FOREIGN KEY (admin_id) REFERENCES admins(id) ON DELETE CASCADE
);

-- Create stores table (franchise locator)
CREATE TABLE IF NOT EXISTS stores (
    id SERIAL PRIMARY KEY,
    company_id INTEGER NOT NULL,
    name VARCHAR(255) NOT NULL,
    address VARCHAR(255) NOT NULL,
    phone VARCHAR(50),
    lat DOUBLE PRECISION,
    lng DOUBLE PRECISION,
    use_yn BOOLEAN NOT NULL DEFAULT TRUE
);

-- Create popups table
CREATE TABLE IF NOT EXISTS popups (
    id SERIAL PRIMARY KEY,
    company_id INTEGER NOT NULL,
    title VARCHAR(255) NOT NULL,
    content TEXT,
    image_url VARCHAR(500),
    link_url VARCHAR(500),
    target VARCHAR(20),
    width INTEGER NOT NULL DEFAULT 400,
    height INTEGER NOT NULL DEFAULT 500,
    pos_top INTEGER NOT NULL DEFAULT 100,
    pos_left INTEGER NOT NULL DEFAULT 100,
    start_date DATE,
    end_date DATE,
    is_active BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// InitSchema initializes the database schema
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	if err != nil {
		return fmt.Errorf("error initializing database schema: %w", err)
	}
	return nil
}
