package postgres

import (
	"context"
	"database/sql"

	"impactecho-backend/internal/logger"
)

// Schema creates every ledger table. It is safe to run on every start.
const Schema = `
CREATE TABLE IF NOT EXISTS registrations (
	id                  SERIAL PRIMARY KEY,
	org_name            TEXT        NOT NULL,
	contact_email       TEXT        NOT NULL,
	contact_person      TEXT        NOT NULL,
	submitted_documents TEXT[]      NOT NULL DEFAULT '{}',
	status              TEXT        NOT NULL DEFAULT 'pending',
	unique_id           TEXT        UNIQUE,
	submitted_at        TIMESTAMPTZ NOT NULL,
	approved_at         TIMESTAMPTZ,
	CHECK ((status = 'approved') = (unique_id IS NOT NULL)),
	CHECK ((status = 'approved') = (approved_at IS NOT NULL))
);

CREATE TABLE IF NOT EXISTS credentials (
	unique_id   TEXT PRIMARY KEY REFERENCES registrations (unique_id),
	username    TEXT        NOT NULL,
	secret_hash TEXT        NOT NULL,
	org_name    TEXT        NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS credentials_username_idx ON credentials (username);

CREATE TABLE IF NOT EXISTS cause_requests (
	id              SERIAL PRIMARY KEY,
	org_identifier  TEXT        NOT NULL,
	org_name        TEXT        NOT NULL,
	title           TEXT        NOT NULL,
	description     TEXT        NOT NULL,
	goal_amount     BIGINT      NOT NULL CHECK (goal_amount > 0),
	image_reference TEXT        NOT NULL,
	status          TEXT        NOT NULL DEFAULT 'pending',
	submitted_at    TIMESTAMPTZ NOT NULL,
	approved_at     TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS cause_requests_org_idx ON cause_requests (org_identifier);

CREATE TABLE IF NOT EXISTS causes (
	id              SERIAL PRIMARY KEY,
	title           TEXT   NOT NULL,
	description     TEXT   NOT NULL,
	goal_amount     BIGINT NOT NULL,
	raised_amount   BIGINT NOT NULL DEFAULT 0,
	image_reference TEXT   NOT NULL,
	org_name        TEXT
);

CREATE TABLE IF NOT EXISTS login_logs (
	id         SERIAL PRIMARY KEY,
	logged_at  TIMESTAMPTZ NOT NULL,
	user_type  TEXT        NOT NULL,
	identifier TEXT        NOT NULL
);
`

// Migrate applies Schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	logger.DatabaseCall("migrate", "schema")
	_, err := db.ExecContext(ctx, Schema)
	logger.DatabaseResult("migrate", 0, err)
	if err != nil {
		return dbError("migrate", err)
	}
	return nil
}
