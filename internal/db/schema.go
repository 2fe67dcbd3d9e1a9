package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'manager', 'user')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_active
    ON users(username) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS inventory_items (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL CHECK (length(trim(name)) > 0),
    quantity    INTEGER NOT NULL CHECK (quantity > 0),
    unit        TEXT NOT NULL CHECK (unit IN ('pieces', 'kg', 'liters', 'packages', 'bottles')),
    category    TEXT NOT NULL CHECK (category IN ('fruits', 'vegetables', 'dairy', 'meat', 'bakery', 'pantry', 'frozen', 'other')),
    expiry_date DATETIME,
    barcode     TEXT,
    image       BLOB,
    image_mime  TEXT,
    added_date  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS waste_records (
    id             TEXT PRIMARY KEY,
    item_id        TEXT NOT NULL,
    item_name      TEXT NOT NULL,
    quantity       INTEGER NOT NULL CHECK (quantity > 0),
    reason         TEXT NOT NULL CHECK (reason IN ('expired', 'spoiled', 'damaged', 'other')),
    date_discarded DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS recipes (
    id              TEXT PRIMARY KEY,
    name            TEXT NOT NULL,
    ingredients     TEXT NOT NULL,
    instructions    TEXT NOT NULL,
    prep_time       INTEGER NOT NULL CHECK (prep_time >= 0),
    difficulty      TEXT NOT NULL CHECK (difficulty IN ('easy', 'medium', 'hard')),
    category        TEXT NOT NULL DEFAULT 'main',
    affiliate_links TEXT NOT NULL DEFAULT '{}',
    created_at      DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
    barcode  TEXT PRIMARY KEY,
    name     TEXT NOT NULL,
    brand    TEXT,
    category TEXT
);

CREATE TABLE IF NOT EXISTS challenges (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    description TEXT NOT NULL,
    points      INTEGER NOT NULL CHECK (points >= 0),
    type        TEXT NOT NULL CHECK (type IN ('daily', 'weekly', 'monthly')),
    deadline    DATETIME,
    status      TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'completed', 'expired')),
    created_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS deals (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    description TEXT NOT NULL,
    discount    TEXT NOT NULL,
    store_name  TEXT NOT NULL,
    expiry_date DATETIME,
    sponsored   INTEGER NOT NULL DEFAULT 0,
    image_url   TEXT,
    created_at  DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
