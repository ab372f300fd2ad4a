// Package pg is the account credential store. It is the sole arbiter of
// login/email uniqueness: constraint violations surface as conflict errors
// regardless of any read-before-write checks done above it.
package pg

import (
	"database/sql"
	"fmt"

	"github.com/shoply-dev/shoply/shared/config"
	shared_pg "github.com/shoply-dev/shoply/shared/storage/pg"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id TEXT PRIMARY KEY,
    login TEXT NOT NULL,
    email TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    email_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
    security_stamp TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT accounts_login_key UNIQUE (login),
    CONSTRAINT accounts_email_key UNIQUE (email)
);

CREATE TABLE IF NOT EXISTS account_roles (
    account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
    role TEXT NOT NULL,
    PRIMARY KEY (account_id, role)
);

CREATE TABLE IF NOT EXISTS confirmation_tokens (
    account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
    token_hash TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (account_id, token_hash)
);
`

type Storage struct {
	db *sql.DB
}

// New connects with the default pool settings and applies the schema.
func New(cfg *config.Config) (*Storage, error) {
	db, err := shared_pg.Connect(cfg, shared_pg.DefaultConnectionConfig())
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Storage{db: db}, nil
}

// NewWithDB wraps an existing connection. Used by tests.
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}
