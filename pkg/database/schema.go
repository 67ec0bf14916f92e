package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Uniqueness on accounts and on the (job seeker, listing) pair is what stops
// concurrent double registration and double application.
const schema = `
CREATE TABLE IF NOT EXISTS roles (
	id   INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS accounts (
	id            BIGSERIAL PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role_id       INTEGER NOT NULL REFERENCES roles(id),
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS job_seekers (
	id         BIGSERIAL PRIMARY KEY,
	account_id BIGINT NOT NULL UNIQUE REFERENCES accounts(id),
	education  TEXT NOT NULL DEFAULT '',
	experience TEXT NOT NULL DEFAULT '',
	skills     TEXT[] NOT NULL DEFAULT '{}',
	resume_key TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS companies (
	id           BIGSERIAL PRIMARY KEY,
	account_id   BIGINT NOT NULL UNIQUE REFERENCES accounts(id),
	company_name TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	website      TEXT NOT NULL DEFAULT '',
	location     TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS job_listings (
	id              BIGSERIAL PRIMARY KEY,
	company_id      BIGINT NOT NULL REFERENCES companies(id),
	title           TEXT NOT NULL,
	description     TEXT NOT NULL,
	skills_required TEXT[] NOT NULL DEFAULT '{}',
	salary          NUMERIC(12,2) NOT NULL DEFAULT 0,
	experience      TEXT NOT NULL DEFAULT '',
	start_date      DATE NOT NULL,
	location        TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_job_listings_company_id ON job_listings(company_id);

CREATE TABLE IF NOT EXISTS job_applications (
	id             BIGSERIAL PRIMARY KEY,
	job_seeker_id  BIGINT NOT NULL REFERENCES job_seekers(id),
	job_listing_id BIGINT NOT NULL REFERENCES job_listings(id) ON DELETE CASCADE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT uq_job_applications_seeker_listing UNIQUE (job_seeker_id, job_listing_id)
);

CREATE INDEX IF NOT EXISTS idx_job_applications_listing_id ON job_applications(job_listing_id);
`

// RoleSeed is one row of the roles table.
type RoleSeed struct {
	ID   int
	Name string
}

// Migrate creates the schema if it does not exist and seeds roles. Both
// steps are idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool, roles []RoleSeed) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	for _, r := range roles {
		_, err := pool.Exec(ctx,
			`INSERT INTO roles (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
			r.ID, r.Name)
		if err != nil {
			return fmt.Errorf("seed role %s: %w", r.Name, err)
		}
	}
	return nil
}
